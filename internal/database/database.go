package database

import (
	"fmt"
	"strings"

	"github.com/preetinest/cms-backend/internal/config"
	"github.com/preetinest/cms-backend/internal/model"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// Init 初始化数据库连接
func Init(cfg *config.DatabaseConfig) error {
	dialector, err := Dialector(cfg)
	if err != nil {
		return err
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(ParseLogLevel(cfg.LogLevel)),
	})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("获取数据库连接池失败: %w", err)
	}
	pool := cfg.Pool
	sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)

	db = conn
	return nil
}

// Dialector 按驱动生成 GORM 方言
func Dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "postgres":
		return postgres.Open(PostgresDSN(cfg.Postgres)), nil
	case "mysql":
		return mysql.Open(MySQLDSN(cfg.MySQL)), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", cfg.Driver)
	}
}

// PostgresDSN 生成 PostgreSQL 连接串
func PostgresDSN(c config.PostgresConfig) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// MySQLDSN 生成 MySQL 连接串
func MySQLDSN(c config.MySQLConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.Charset, c.ParseTime, c.Loc)
}

// GetDB 获取数据库实例
func GetDB() *gorm.DB {
	return db
}

// Close 关闭数据库连接
func Close() error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping 测试数据库连接
func Ping() error {
	if db == nil {
		return fmt.Errorf("数据库未初始化")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// ParseLogLevel 解析 GORM 日志级别，未知值按 warn 处理
func ParseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// LiveSlugIndexSQL 生成 slug 在未删除记录中唯一的部分索引语句（仅 PostgreSQL 支持）
func LiveSlugIndexSQL(table string) string {
	return fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS uidx_%s_live_slug ON %s (slug) WHERE lifecycle_state = 'live'",
		table, table,
	)
}

// AutoMigrate 自动迁移数据库表结构
func AutoMigrate(models ...interface{}) error {
	if db == nil {
		return fmt.Errorf("数据库未初始化")
	}
	return db.AutoMigrate(models...)
}

// Migrate 迁移全部模型；PostgreSQL 额外为带 slug 的表创建部分唯一索引
// MySQL 不支持部分索引，slug 唯一性只由服务层保证
func Migrate(driver string) error {
	if err := AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("迁移表结构失败: %w", err)
	}
	if driver != "postgres" {
		return nil
	}
	for _, table := range model.SlugTables() {
		if err := db.Exec(LiveSlugIndexSQL(table)).Error; err != nil {
			return fmt.Errorf("创建 %s slug 索引失败: %w", table, err)
		}
	}
	return nil
}

// DropAll 按依赖逆序删除全部模型对应的表
func DropAll() ([]string, error) {
	if db == nil {
		return nil, fmt.Errorf("数据库未初始化")
	}
	models := model.All()
	migrator := db.Migrator()
	var dropped []string
	for i := len(models) - 1; i >= 0; i-- {
		m := models[i]
		if !migrator.HasTable(m) {
			continue
		}
		if err := migrator.DropTable(m); err != nil {
			return dropped, fmt.Errorf("删除表 %T 失败: %w", m, err)
		}
		dropped = append(dropped, fmt.Sprintf("%T", m))
	}
	return dropped, nil
}
