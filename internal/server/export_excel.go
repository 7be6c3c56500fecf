package server

import (
	"fmt"
	"net/http"

	"github.com/dreamlonglll/mini-todo/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// handleExportExcel 导出待办为 Excel 文件
func (s *Server) handleExportExcel(c *gin.Context) {
	todos, err := s.storageMgr.ListTodos()
	if err != nil {
		writeStoreError(c, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "待办"
	index, err := f.NewSheet(sheet)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"ID", "标题", "描述", "颜色", "象限", "已完成", "通知时间", "开始时间", "截止时间", "子任务", "创建时间", "更新时间"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, todo := range todos {
		values := []interface{}{
			todo.ID,
			todo.Title,
			derefStr(todo.Description),
			todo.Color,
			todo.Quadrant,
			completedText(todo.Completed),
			derefStr(todo.NotifyAt),
			derefStr(todo.StartTime),
			derefStr(todo.EndTime),
			subtaskSummary(todo.Subtasks),
			todo.CreatedAt,
			todo.UpdatedAt,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=minitodo-export.xlsx")
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "写入 Excel 失败"})
	}
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func completedText(completed bool) string {
	if completed {
		return "是"
	}
	return "否"
}

// subtaskSummary 子任务汇总为单元格文本, 如 "[x] 打包 / [ ] 邮寄"
func subtaskSummary(subtasks []models.SubTask) string {
	if len(subtasks) == 0 {
		return ""
	}
	summary := ""
	for i, sub := range subtasks {
		mark := "[ ]"
		if sub.Completed {
			mark = "[x]"
		}
		if i > 0 {
			summary += " / "
		}
		summary += fmt.Sprintf("%s %s", mark, sub.Title)
	}
	return summary
}
