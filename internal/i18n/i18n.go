package i18n

import (
	"fmt"
	"strings"

	"github.com/credittalk/api/internal/constants"

	"github.com/gin-gonic/gin"
)

// DefaultLocale 默认站点语言
const DefaultLocale = constants.LocaleKoKR

// T 根据语言与键返回文案，未命中时回退默认语言，再回退键本身
func T(locale, key string) string {
	locale = Normalize(locale)
	if catalog, ok := catalogs[locale]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}
	if catalog, ok := catalogs[DefaultLocale]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}
	return key
}

// Sprintf 带参数的文案格式化
func Sprintf(locale, key string, args ...interface{}) string {
	format := T(locale, key)
	if len(args) == 0 || !strings.Contains(format, "%") {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// Normalize 归一化语言标识
func Normalize(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return DefaultLocale
	}
	lower := strings.ToLower(locale)
	switch {
	case strings.HasPrefix(lower, "ko"):
		return constants.LocaleKoKR
	case strings.HasPrefix(lower, "en"):
		return constants.LocaleEnUS
	}
	return DefaultLocale
}

// ResolveLocale 从请求解析语言，优先级：query > Header > 默认
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if locale := strings.TrimSpace(c.Query("locale")); locale != "" {
		return Normalize(locale)
	}
	header := c.GetHeader("Accept-Language")
	if header == "" {
		return DefaultLocale
	}
	// 只取首个语言标签，忽略权重
	first := header
	if idx := strings.IndexAny(header, ",;"); idx >= 0 {
		first = header[:idx]
	}
	return Normalize(first)
}
