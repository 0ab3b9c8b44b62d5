package queue

import (
	"encoding/json"

	"github.com/credittalk/api/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskPushNewPost 新帖子推送任务
	TaskPushNewPost = constants.TaskPushNewPost
	// TaskPushNewComment 新评论推送任务
	TaskPushNewComment = constants.TaskPushNewComment
	// TaskPushChatMessage 聊天消息推送任务
	TaskPushChatMessage = constants.TaskPushChatMessage
	// TaskSMSHelpdeskNotify 帮助台短信通知任务
	TaskSMSHelpdeskNotify = constants.TaskSMSHelpdeskNotify
	// TaskAudioAnalyze 举报录音分析任务
	TaskAudioAnalyze = constants.TaskAudioAnalyze
)

// PushNewPostPayload 新帖子推送任务载荷
type PushNewPostPayload struct {
	PostID           uint   `json:"post_id"`
	Title            string `json:"title"`
	AuthorAuthUserID string `json:"author_auth_user_id"`
}

// PushNewCommentPayload 新评论推送任务载荷
type PushNewCommentPayload struct {
	PostID               uint   `json:"post_id"`
	CommentPreview       string `json:"comment_preview"`
	PostAuthorAuthUserID string `json:"post_author_auth_user_id"`
	CommenterAuthUserID  string `json:"commenter_auth_user_id"`
}

// PushChatMessagePayload 聊天消息推送任务载荷
type PushChatMessagePayload struct {
	RoomID             uint   `json:"room_id"`
	SenderAuthUserID   string `json:"sender_auth_user_id"`
	SenderNickname     string `json:"sender_nickname"`
	MessagePreview     string `json:"message_preview"`
	ReceiverAuthUserID string `json:"receiver_auth_user_id"`
}

// SMSHelpdeskNotifyPayload 帮助台短信通知任务载荷
type SMSHelpdeskNotifyPayload struct {
	QuestionID uint   `json:"question_id"`
	Title      string `json:"title"`
}

// AudioAnalyzePayload 举报录音分析任务载荷
type AudioAnalyzePayload struct {
	ReportID uint `json:"report_id"`
}

// NewPushNewPostTask 创建新帖子推送任务
func NewPushNewPostTask(payload PushNewPostPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPushNewPost, body), nil
}

// NewPushNewCommentTask 创建新评论推送任务
func NewPushNewCommentTask(payload PushNewCommentPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPushNewComment, body), nil
}

// NewPushChatMessageTask 创建聊天消息推送任务
func NewPushChatMessageTask(payload PushChatMessagePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPushChatMessage, body), nil
}

// NewSMSHelpdeskNotifyTask 创建帮助台短信通知任务
func NewSMSHelpdeskNotifyTask(payload SMSHelpdeskNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSMSHelpdeskNotify, body), nil
}

// NewAudioAnalyzeTask 创建举报录音分析任务
func NewAudioAnalyzeTask(payload AudioAnalyzePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAudioAnalyze, body), nil
}
