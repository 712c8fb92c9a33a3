// 创建或恢复后台管理员的工具
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/preetinest/cms-backend/internal/config"
	"github.com/preetinest/cms-backend/internal/database"
	"github.com/preetinest/cms-backend/internal/repository"
	"github.com/preetinest/cms-backend/internal/service"
)

func main() {
	email := flag.String("email", "", "管理员邮箱")
	password := flag.String("password", "", "管理员密码，至少 8 位")
	name := flag.String("name", "Administrator", "管理员名称")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Println("用法: create-admin -email <邮箱> -password <密码> [-name <名称>]")
		fmt.Println("示例: create-admin -email admin@example.com -password 'Passw0rd!'")
		return
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 初始化数据库
	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}
	defer database.Close()

	if err := database.Migrate(cfg.Database.Driver); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	users := repository.NewUserRepository(database.GetDB())
	roles := repository.NewRoleRepository(database.GetDB())

	user, created, err := service.BootstrapAdmin(context.Background(), users, roles, service.BootstrapAdminRequest{
		Name:     *name,
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		log.Fatalf("创建管理员失败: %v", err)
	}

	if created {
		fmt.Printf("已创建管理员 %s (%s)\n", user.Name, user.Email)
	} else {
		fmt.Printf("已恢复管理员 %s (%s) 并重置密码\n", user.Name, user.Email)
	}
}
