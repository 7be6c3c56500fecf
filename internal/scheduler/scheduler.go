package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dreamlonglll/mini-todo/internal/config"
	"github.com/dreamlonglll/mini-todo/internal/holiday"
	"github.com/dreamlonglll/mini-todo/internal/storage"
	"github.com/dreamlonglll/mini-todo/internal/window"
	"github.com/dreamlonglll/mini-todo/pkg/models"

	"github.com/robfig/cron/v3"
)

// Notifier 通知发送接口, type 为 "system" 或 "app"
type Notifier interface {
	Notify(notificationType string, n models.PendingNotification) error
}

// ConsoleNotifier 控制台通知, 作为默认实现
type ConsoleNotifier struct{}

func (ConsoleNotifier) Notify(notificationType string, n models.PendingNotification) error {
	body := ""
	if n.Description != nil {
		body = *n.Description
	}
	fmt.Printf("🔔 [%s] 待办提醒: %s %s\n", notificationType, n.Title, body)
	return nil
}

// Scheduler 任务调度器
type Scheduler struct {
	cron       *cron.Cron
	configMgr  *config.Manager
	storageMgr *storage.Manager
	holidays   *holiday.Service
	controller *window.Controller
	notifier   Notifier
	mu         sync.Mutex
	running    bool
}

// NewScheduler 创建任务调度器
func NewScheduler(
	configMgr *config.Manager,
	storageMgr *storage.Manager,
	holidays *holiday.Service,
	controller *window.Controller,
	notifier Notifier,
) *Scheduler {
	if notifier == nil {
		notifier = ConsoleNotifier{}
	}
	return &Scheduler{
		cron:       cron.New(),
		configMgr:  configMgr,
		storageMgr: storageMgr,
		holidays:   holidays,
		controller: controller,
		notifier:   notifier,
	}
}

// Start 启动调度器
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	// 每分钟检查到期的待办提醒
	_, err := s.cron.AddFunc("* * * * *", s.runNotificationSweep)
	if err != nil {
		return fmt.Errorf("failed to add notification job: %w", err)
	}

	// 每天凌晨 00:05 预加载节假日数据
	_, err = s.cron.AddFunc("5 0 * * *", s.runHolidayPreload)
	if err != nil {
		return fmt.Errorf("failed to add holiday preload job: %w", err)
	}

	// 周期性保存窗口状态
	if err := s.addWindowAutosaveJob(); err != nil {
		fmt.Printf("⚠️ 添加窗口状态自动保存任务失败: %v\n", err)
	}

	s.cron.Start()
	s.running = true

	fmt.Println("⏰ 任务调度器已启动")
	return nil
}

// Stop 停止调度器
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cron.Stop()
	s.running = false
	fmt.Println("⏰ 任务调度器已停止")
}

// IsRunning 检查是否运行中
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// runNotificationSweep 检查到期的待办并发送提醒
// 每条提醒只发送一次, 发送成功后立即标记, 避免重复提醒
func (s *Scheduler) runNotificationSweep() {
	pending, err := s.storageMgr.GetDueNotifications()
	if err != nil {
		fmt.Printf("⚠️ 查询到期提醒失败: %v\n", err)
		return
	}
	if len(pending) == 0 {
		return
	}

	notificationType := s.storageMgr.GetNotificationType()
	for _, n := range pending {
		if err := s.notifier.Notify(notificationType, n); err != nil {
			fmt.Printf("❌ 发送提醒失败 (ID=%d): %v\n", n.ID, err)
			continue
		}
		if err := s.storageMgr.MarkNotified(n.ID); err != nil {
			fmt.Printf("⚠️ 标记提醒状态失败 (ID=%d): %v\n", n.ID, err)
		}
	}
}

// runHolidayPreload 预加载当前年份及未来年份的节假日数据
func (s *Scheduler) runHolidayPreload() {
	holidayCfg := s.configMgr.GetHoliday()

	currentYear := time.Now().Year()
	years := make([]int, 0, holidayCfg.PreloadYearsAhead+1)
	for y := currentYear; y <= currentYear+holidayCfg.PreloadYearsAhead; y++ {
		years = append(years, y)
	}

	fmt.Printf("📅 预加载节假日数据: %v\n", years)
	s.holidays.PreloadYears(context.Background(), years)
}

// addWindowAutosaveJob 添加窗口状态周期保存任务
func (s *Scheduler) addWindowAutosaveJob() error {
	windowCfg := s.configMgr.GetWindow()
	if windowCfg.AutosaveMinutes <= 0 {
		fmt.Println("ℹ️ 窗口状态自动保存已关闭")
		return nil
	}

	cronExpr := fmt.Sprintf("@every %dm", windowCfg.AutosaveMinutes)
	_, err := s.cron.AddFunc(cronExpr, s.runWindowAutosave)
	if err != nil {
		return fmt.Errorf("failed to add window autosave job: %w", err)
	}

	fmt.Printf("💾 窗口状态自动保存任务已添加 (间隔: %d分钟)\n", windowCfg.AutosaveMinutes)
	return nil
}

// runWindowAutosave 保存当前窗口几何信息
func (s *Scheduler) runWindowAutosave() {
	s.controller.SaveWindowState()
}
