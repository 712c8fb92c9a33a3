package model

// LifecycleState 实体生命周期状态，只允许 live -> deleted
type LifecycleState string

const (
	StateLive    LifecycleState = "live"    // 正常
	StateDeleted LifecycleState = "deleted" // 已软删除
)

// Visibility 外键校验时对被引用实体的可见性要求
type Visibility int

const (
	// VisibilityUsable 只要求未删除
	VisibilityUsable Visibility = iota
	// VisibilityEnabled 未删除且已启用
	VisibilityEnabled
	// VisibilityVisible 未删除、已启用且对外展示
	VisibilityVisible
)

// String 返回可读名称
func (v Visibility) String() string {
	switch v {
	case VisibilityUsable:
		return "usable"
	case VisibilityEnabled:
		return "enabled"
	case VisibilityVisible:
		return "visible"
	default:
		return "unknown"
	}
}

// Lifecycle 生命周期字段，内嵌到每个实体中
type Lifecycle struct {
	Active        bool           `gorm:"not null" json:"active"`
	DisplayStatus bool           `gorm:"not null" json:"display_status"`
	State         LifecycleState `gorm:"column:lifecycle_state;type:varchar(10);index;not null" json:"-"`
}

// Life 返回生命周期字段
func (l *Lifecycle) Life() *Lifecycle {
	return l
}

// Activate 新建实体的初始状态
func (l *Lifecycle) Activate() {
	l.State = StateLive
	l.Active = true
	l.DisplayStatus = true
}

// IsUsable 未被删除
func (l *Lifecycle) IsUsable() bool {
	return l.State == StateLive
}

// IsEnabled 未删除且已启用
func (l *Lifecycle) IsEnabled() bool {
	return l.IsUsable() && l.Active
}

// IsVisible 未删除、已启用且对外展示
func (l *Lifecycle) IsVisible() bool {
	return l.IsEnabled() && l.DisplayStatus
}

// Satisfies 判断是否满足给定的可见性要求
func (l *Lifecycle) Satisfies(v Visibility) bool {
	switch v {
	case VisibilityUsable:
		return l.IsUsable()
	case VisibilityEnabled:
		return l.IsEnabled()
	default:
		return l.IsVisible()
	}
}

// MarkDeleted 软删除：同时取消启用和展示
func (l *Lifecycle) MarkDeleted() {
	l.State = StateDeleted
	l.Active = false
	l.DisplayStatus = false
}
