package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse 统一错误响应
func ErrorResponse(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"code":    code,
		"message": message,
	})
}

// SuccessResponse 统一成功响应，key为数据字段名
func SuccessResponse(c *gin.Context, key string, data interface{}, total int) {
	c.JSON(http.StatusOK, gin.H{
		key:     data,
		"total": total,
	})
}
