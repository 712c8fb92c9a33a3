// Package main 数据库迁移工具
package main

import (
	"flag"
	"log"

	"github.com/preetinest/cms-backend/internal/config"
	"github.com/preetinest/cms-backend/internal/database"
	"github.com/preetinest/cms-backend/internal/model"
)

func main() {
	// 命令行参数
	configPath := flag.String("config", "", "配置文件路径")
	flag.Parse()

	// 加载配置
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 初始化数据库连接
	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}
	defer database.Close()
	log.Println("数据库连接成功")

	log.Println("开始执行数据库迁移...")
	if err := database.Migrate(cfg.Database.Driver); err != nil {
		log.Fatalf("迁移失败: %v", err)
	}
	log.Println("数据库迁移完成！")

	log.Println("已创建/更新的表:")
	for _, m := range model.All() {
		log.Printf("  - %T", m)
	}
	if cfg.Database.Driver == "postgres" {
		for _, table := range model.SlugTables() {
			log.Printf("  - %s (slug 部分唯一索引)", table)
		}
	} else {
		log.Println("当前驱动不支持部分索引，slug 唯一性由服务层校验")
	}
}
