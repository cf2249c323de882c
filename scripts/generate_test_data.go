package main

import (
	"fmt"
	"log"
	"time"

	"github.com/focuslog/internal/config"
	"github.com/focuslog/internal/db"
	"github.com/focuslog/internal/service"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// 演示数据生成器
func main() {
	// 初始化数据库
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	fmt.Println("开始生成演示数据...")

	user := createDemoUser()
	// 与服务层一致，按本地时区的当天零点落库
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	createDemoTodos(user, today)
	createDemoStudy(user, today)
	createDemoGoals(user, today)
	createDemoClears(user, today)

	fmt.Println("演示数据生成完成！")
	fmt.Println("用户: planner (密码: planner123)")
}

// 创建演示用户
func createDemoUser() db.User {
	var user db.User
	if err := db.DB.Where("username = ?", "planner").First(&user).Error; err == nil {
		fmt.Println("用户已存在，跳过创建")
		return user
	}

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("planner123"), bcrypt.DefaultCost)
	user = db.User{
		Username: "planner",
		Password: string(hashedPassword),
	}
	db.DB.Create(&user)

	fmt.Println("✅ 演示用户创建完成")
	return user
}

// 创建近三天的待办，覆盖各分类与状态
func createDemoTodos(user db.User, today time.Time) {
	var count int64
	db.DB.Model(&db.Todo{}).Where("user_id = ?", user.ID).Count(&count)
	if count > 0 {
		fmt.Println("待办已存在，跳过创建")
		return
	}

	items := []struct {
		content string
		status  string
		daysAgo int
	}{
		{"수학 문제집 2단원 풀기", db.StatusDone, 2},
		{"영어 단어 50개 암기", db.StatusDone, 2},
		{"30분 러닝", db.StatusFail, 2},
		{"코딩 강의 듣기", db.StatusDone, 1},
		{"저녁 산책", db.StatusDone, 1},
		{"독서 한 챕터", db.StatusDeferred, 1},
		{"시험 범위 복습", db.StatusNone, 0},
		{"점심 약속", db.StatusNone, 0},
	}

	for _, item := range items {
		todo := db.Todo{
			UserID:   user.ID,
			Content:  item.content,
			Category: service.DetectCategory(item.content),
			Status:   item.status,
			TodoDate: today.AddDate(0, 0, -item.daysAgo),
		}
		if err := db.DB.Create(&todo).Error; err != nil {
			log.Printf("创建待办失败: %v", err)
		}
	}

	fmt.Println("✅ 演示待办创建完成")
}

// 创建近一周的学习时长记录
func createDemoStudy(user db.User, today time.Time) {
	var count int64
	db.DB.Model(&db.StudyDay{}).Where("user_id = ?", user.ID).Count(&count)
	if count > 0 {
		fmt.Println("学习记录已存在，跳过创建")
		return
	}

	seconds := []int64{5400, 7200, 3600, 0, 9000, 6300, 1800}
	for i, sec := range seconds {
		date := today.AddDate(0, 0, -(len(seconds) - 1 - i))
		day := db.StudyDay{
			UserID:       user.ID,
			StudyDate:    date,
			StudySeconds: sec,
		}
		if err := db.DB.Create(&day).Error; err != nil {
			log.Printf("创建学习记录失败: %v", err)
			continue
		}
		if sec > 0 {
			flush := db.SessionFlush{
				SessionID:    uuid.NewString(),
				UserID:       user.ID,
				StudyDate:    date,
				DeltaSeconds: sec,
			}
			if err := db.DB.Create(&flush).Error; err != nil {
				log.Printf("创建上报流水失败: %v", err)
			}
		}
	}

	fmt.Println("✅ 演示学习记录创建完成")
}

// 创建一个已完成的历史目标和一个进行中的目标
func createDemoGoals(user db.User, today time.Time) {
	var count int64
	db.DB.Model(&db.Goal{}).Where("user_id = ?", user.ID).Count(&count)
	if count > 0 {
		fmt.Println("目标已存在，跳过创建")
		return
	}

	finished := db.Goal{
		UserID:        user.ID,
		Title:         "매일 2시간 집중 공부",
		Retrospective: "## 일주일 회고\n\n- 평일은 거의 달성\n- 주말 루틴을 더 단단히 잡아야 함",
		StartDate:     today.AddDate(0, 0, -10),
		EndDate:       today.AddDate(0, 0, -3),
		Status:        db.GoalSuccess,
	}
	if err := db.DB.Create(&finished).Error; err != nil {
		log.Printf("创建历史目标失败: %v", err)
	}

	ongoing := db.Goal{
		UserID:    user.ID,
		Title:     "아침 운동 습관 만들기",
		StartDate: today.AddDate(0, 0, -2),
		EndDate:   today.AddDate(0, 0, 5),
		Status:    db.GoalOngoing,
	}
	if err := db.DB.Create(&ongoing).Error; err != nil {
		log.Printf("创建进行中目标失败: %v", err)
	}

	fmt.Println("✅ 演示目标创建完成")
}

// 为已过去的日期补齐清算记录
func createDemoClears(user db.User, today time.Time) {
	var count int64
	db.DB.Model(&db.ClearRecord{}).Where("user_id = ?", user.ID).Count(&count)
	if count > 0 {
		fmt.Println("清算记录已存在，跳过创建")
		return
	}

	records := []struct {
		daysAgo int
		percent int
	}{
		{2, 67},
		{1, 67},
	}
	for _, rec := range records {
		clear := db.ClearRecord{
			UserID:    user.ID,
			ClearDate: today.AddDate(0, 0, -rec.daysAgo),
			Percent:   rec.percent,
		}
		if err := db.DB.Create(&clear).Error; err != nil {
			log.Printf("创建清算记录失败: %v", err)
		}
	}

	fmt.Println("✅ 演示清算记录创建完成")
}
