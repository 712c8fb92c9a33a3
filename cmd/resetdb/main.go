package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/preetinest/cms-backend/internal/config"
	"github.com/preetinest/cms-backend/internal/database"
)

// 清空 CMS 业务表的重置工具：
// - 按依赖逆序 Drop 表，然后可选地重新迁移。
// - 不会删除数据库本身或其它非 CMS 表。
// 用法：
//
//	go run ./cmd/resetdb -force
//
// 可选参数：
//
//	-recreate  重建表（默认 true）
//	-force     必须为 true 才会执行（安全开关）
func main() {
	recreate := flag.Bool("recreate", true, "是否在清空后重建表")
	force := flag.Bool("force", false, "确认执行清空操作")
	flag.Parse()

	if !*force {
		log.Fatal("为避免误操作，请加上 -force 参数：go run ./cmd/resetdb -force")
	}

	// 加载配置并连接数据库
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}
	defer database.Close()

	fmt.Println("开始清空数据库中的 CMS 表...")
	dropped, err := database.DropAll()
	for _, name := range dropped {
		fmt.Printf("已删除表: %s\n", name)
	}
	if err != nil {
		log.Fatalf("删除表失败: %v", err)
	}

	if *recreate {
		if err := database.Migrate(cfg.Database.Driver); err != nil {
			log.Fatalf("重建表失败: %v", err)
		}
		fmt.Println("已重建全部表")
	}

	fmt.Println("完成。")
}
