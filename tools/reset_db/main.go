package main

import (
	"fmt"
	"log"
	"os"

	"im-message/config"
	dbPkg "im-message/pkg/db"

	"github.com/gookit/color"
)

var (
	messageTables = []string{"user_message", "group_message"}
	policyTables  = []string{"user_friend", "user_chat_setting", "chat_group", "group_black"}
)

// 用法: reset_db [all]
// 默认只清空消息表，all 同时清空好友、聊天设置和群组策略表
func main() {
	cfg := config.LoadConfig()

	db, err := dbPkg.InitDB(cfg.Database)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer dbPkg.CloseDB()

	color.Green.Println("Database connected successfully")
	fmt.Printf("Database: %s\n", cfg.Database.Database)

	tables := messageTables
	if len(os.Args) > 1 && os.Args[1] == "all" {
		tables = append(append([]string{}, messageTables...), policyTables...)
	}

	color.Red.Printf("\nWARNING: This operation will CLEAR ALL DATA in tables %v!\n", tables)
	fmt.Print("Type 'YES' to confirm: ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "YES" {
		fmt.Println("Operation cancelled")
		return
	}

	failed := 0
	for _, table := range tables {
		fmt.Printf("Truncating table %s... ", table)
		if err := db.Exec(fmt.Sprintf("TRUNCATE TABLE `%s`", table)).Error; err != nil {
			failed++
			color.Red.Printf("Failed: %v\n", err)
		} else {
			color.Green.Println("Success")
		}
	}

	if failed > 0 {
		color.Yellow.Printf("\nDatabase reset finished with %d failed table(s)\n", failed)
		os.Exit(1)
	}
	// 消息ID由雪花算法生成，不依赖自增，截断后无需重置
	color.Green.Println("\nDatabase reset completed, table structure preserved")
}
