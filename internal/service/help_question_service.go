package service

import (
	"strings"

	"github.com/credittalk/api/internal/constants"
	"github.com/credittalk/api/internal/logger"
	"github.com/credittalk/api/internal/models"
	"github.com/credittalk/api/internal/queue"
	"github.com/credittalk/api/internal/repository"
)

// HelpQuestionService 帮助台提问服务
type HelpQuestionService struct {
	questionRepo repository.HelpQuestionRepository
	queueClient  *queue.Client
}

// NewHelpQuestionService 创建帮助台提问服务
func NewHelpQuestionService(questionRepo repository.HelpQuestionRepository, queueClient *queue.Client) *HelpQuestionService {
	return &HelpQuestionService{questionRepo: questionRepo, queueClient: queueClient}
}

// Create 提交提问，成功后异步短信通知管理员
func (s *HelpQuestionService) Create(authUserID, title, content string) (*models.HelpQuestion, error) {
	authUserID = strings.TrimSpace(authUserID)
	title = strings.TrimSpace(title)
	if authUserID == "" || title == "" {
		return nil, ErrFieldsRequired
	}

	question := &models.HelpQuestion{
		AuthUserID: authUserID,
		Title:      title,
		Content:    strings.TrimSpace(content),
		Status:     constants.HelpQuestionStatusOpen,
	}
	if err := s.questionRepo.Create(question); err != nil {
		return nil, err
	}

	if s.queueClient != nil && s.queueClient.Enabled() {
		payload := queue.SMSHelpdeskNotifyPayload{QuestionID: question.ID, Title: question.Title}
		if err := s.queueClient.EnqueueSMSHelpdeskNotify(payload); err != nil {
			logger.Warnw("帮助台短信任务入队失败", "question_id", question.ID, "error", err)
		}
	}
	return question, nil
}
