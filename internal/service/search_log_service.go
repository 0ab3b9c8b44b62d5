package service

import (
	"strings"

	"github.com/credittalk/api/internal/models"
	"github.com/credittalk/api/internal/repository"
)

// SearchLogService 搜索记录服务
type SearchLogService struct {
	searchLogRepo repository.SearchLogRepository
}

// NewSearchLogService 创建搜索记录服务
func NewSearchLogService(searchLogRepo repository.SearchLogRepository) *SearchLogService {
	return &SearchLogService{searchLogRepo: searchLogRepo}
}

// Log 记录一次搜索
func (s *SearchLogService) Log(authUserID, term string) error {
	term = strings.TrimSpace(term)
	if term == "" {
		return ErrFieldsRequired
	}
	log := &models.SearchLog{
		AuthUserID: strings.TrimSpace(authUserID),
		SearchTerm: term,
	}
	return s.searchLogRepo.Create(log)
}
