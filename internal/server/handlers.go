package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dreamlonglll/mini-todo/internal/lunar"
	"github.com/dreamlonglll/mini-todo/internal/screen"
	"github.com/dreamlonglll/mini-todo/internal/storage"
	"github.com/dreamlonglll/mini-todo/pkg/models"

	"github.com/gin-gonic/gin"
)

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的 ID"})
		return 0, false
	}
	return id, true
}

func writeStoreError(c *gin.Context, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "记录不存在"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// ===== 配置 =====

// handleGetConfig 获取配置
func (s *Server) handleGetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, s.configMgr.Get())
}

// handleUpdateConfig 更新配置
func (s *Server) handleUpdateConfig(c *gin.Context) {
	var newConfig models.AppConfig
	if err := c.ShouldBindJSON(&newConfig); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.configMgr.Update(func(cfg *models.AppConfig) {
		*cfg = newConfig
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "配置已更新"})
}

// ===== 待办 =====

func (s *Server) handleGetTodos(c *gin.Context) {
	c.JSON(http.StatusOK, s.todos.All())
}

func (s *Server) handleGetPendingTodos(c *gin.Context) {
	c.JSON(http.StatusOK, s.todos.Pending())
}

func (s *Server) handleGetCompletedTodos(c *gin.Context) {
	c.JSON(http.StatusOK, s.todos.Completed())
}

func (s *Server) handleGetTodoCounts(c *gin.Context) {
	c.JSON(http.StatusOK, s.todos.Counts())
}

func (s *Server) handleCreateTodo(c *gin.Context) {
	var req models.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "标题不能为空"})
		return
	}

	created, err := s.todos.Add(&req)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (s *Server) handleUpdateTodo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := s.todos.Update(id, &req)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteTodo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.todos.Delete(id); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "已删除"})
}

func (s *Server) handleToggleTodo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	toggled, err := s.todos.ToggleComplete(id)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, toggled)
}

func (s *Server) handleReorderTodos(c *gin.Context) {
	var req struct {
		IDs []int64 `json:"ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.todos.Reorder(req.IDs); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "排序已更新"})
}

// ===== 子任务 =====

func (s *Server) handleCreateSubTask(c *gin.Context) {
	var req models.CreateSubTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "标题不能为空"})
		return
	}

	created, err := s.todos.AddSubTask(&req)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (s *Server) handleUpdateSubTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdateSubTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := s.todos.UpdateSubTask(id, &req)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteSubTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.todos.DeleteSubTask(id); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "已删除"})
}

func (s *Server) handleToggleSubTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	toggled, err := s.todos.ToggleSubTask(id)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, toggled)
}

// ===== 设置 =====

func (s *Server) handleGetSettings(c *gin.Context) {
	settings, err := s.storageMgr.GetSettings()
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (s *Server) handleSaveSettings(c *gin.Context) {
	var settings models.AppSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.storageMgr.SaveSettings(&settings); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "设置已保存"})
}

func (s *Server) handleGetNotificationType(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"type": s.storageMgr.GetNotificationType()})
}

func (s *Server) handleSetNotificationType(c *gin.Context) {
	var req struct {
		Type string `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.storageMgr.SetNotificationType(req.Type); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "通知类型已更新"})
}

// ===== 屏幕配置 =====

func (s *Server) handleListScreenConfigs(c *gin.Context) {
	s.screenConfigs.Refresh()
	configs := s.screenConfigs.List()

	// 补充默认显示名称
	type namedConfig struct {
		models.ScreenConfig
		DefaultName string `json:"defaultName"`
	}
	result := make([]namedConfig, 0, len(configs))
	for _, cfg := range configs {
		result = append(result, namedConfig{
			ScreenConfig: cfg,
			DefaultName:  screen.DisplayName(cfg.ConfigID),
		})
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleGetCurrentScreenConfig(c *gin.Context) {
	configID := screen.Generate(s.enum)
	config := s.screenConfigs.Get(configID)

	c.JSON(http.StatusOK, gin.H{
		"configId":    configID,
		"displayName": screen.DisplayName(configID),
		"config":      config,
	})
}

func (s *Server) handleSaveScreenConfig(c *gin.Context) {
	var req models.SaveScreenConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ConfigID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "configId 不能为空"})
		return
	}

	saved, err := s.screenConfigs.Save(&req)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (s *Server) handleRenameScreenConfig(c *gin.Context) {
	var req struct {
		DisplayName string `json:"displayName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.screenConfigs.Rename(c.Param("configId"), req.DisplayName); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "名称已更新"})
}

func (s *Server) handleDeleteScreenConfig(c *gin.Context) {
	if err := s.screenConfigs.Delete(c.Param("configId")); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "已删除"})
}

// ===== 窗口控制 =====

func (s *Server) handleGetWindowState(c *gin.Context) {
	configID, isFixed := s.controller.State()
	c.JSON(http.StatusOK, gin.H{
		"configId": configID,
		"isFixed":  isFixed,
	})
}

func (s *Server) handleToggleFixedMode(c *gin.Context) {
	isFixed := s.controller.ToggleFixedMode()
	c.JSON(http.StatusOK, gin.H{"isFixed": isFixed})
}

func (s *Server) handleSaveWindowState(c *gin.Context) {
	s.controller.SaveWindowState()
	c.JSON(http.StatusOK, gin.H{"message": "窗口状态已保存"})
}

func (s *Server) handleResetWindow(c *gin.Context) {
	s.controller.Reset()
	c.JSON(http.StatusOK, gin.H{"message": "窗口已重置"})
}

// ===== 节假日 =====

func (s *Server) handleGetYearHolidays(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的年份"})
		return
	}
	c.JSON(http.StatusOK, s.holidays.YearHolidays(c.Request.Context(), year))
}

func (s *Server) handleGetHolidayInfo(c *gin.Context) {
	info := s.holidays.GetHolidayInfo(c.Request.Context(), c.Param("date"))
	if info == nil {
		c.JSON(http.StatusOK, gin.H{"date": c.Param("date"), "info": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": info.Date, "info": info})
}

func (s *Server) handlePreloadHolidays(c *gin.Context) {
	var req struct {
		Years []int `json:"years"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Years) == 0 {
		year := time.Now().Year()
		req.Years = []int{year, year + 1}
	}

	// 预加载在后台进行, 不阻塞请求
	go s.holidays.PreloadYears(context.Background(), req.Years)
	c.JSON(http.StatusOK, gin.H{"message": "预加载已开始", "years": req.Years})
}

func (s *Server) handleClearHolidayCache(c *gin.Context) {
	s.holidays.ClearCache()
	c.JSON(http.StatusOK, gin.H{"message": "缓存已清空"})
}

// ===== 农历 =====

func (s *Server) handleGetLunarInfo(c *gin.Context) {
	info, err := lunar.GetInfo(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) handleGetLunarDisplay(c *gin.Context) {
	display, err := lunar.DisplayText(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, display)
}

func (s *Server) handleGetMonthLunar(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的年份"})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的月份"})
		return
	}

	infos, err := lunar.MonthInfo(year, month)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, infos)
}

// ===== 数据导入导出 =====

func (s *Server) handleExportData(c *gin.Context) {
	data, err := s.storageMgr.ExportJSON()
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="minitodo-backup.json"`)
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(data))
}

func (s *Server) handleImportData(c *gin.Context) {
	var req struct {
		JSONData string `json:"jsonData"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.storageMgr.ImportJSON(req.JSONData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 导入后刷新内存镜像
	if err := s.todos.Fetch(); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "数据已导入"})
}
