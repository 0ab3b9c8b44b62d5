package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/credittalk/api/internal/logger"
	"github.com/credittalk/api/internal/provider"
	"github.com/credittalk/api/internal/queue"
	"github.com/credittalk/api/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskPushNewPost, c.handlePushNewPost)
	mux.HandleFunc(queue.TaskPushNewComment, c.handlePushNewComment)
	mux.HandleFunc(queue.TaskPushChatMessage, c.handlePushChatMessage)
	mux.HandleFunc(queue.TaskSMSHelpdeskNotify, c.handleSMSHelpdeskNotify)
	mux.HandleFunc(queue.TaskAudioAnalyze, c.handleAudioAnalyze)
}

func (c *Consumer) handlePushNewPost(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.PushNewPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_push_new_post_unmarshal_failed", "error", err)
		return err
	}
	if payload.PostID == 0 {
		logger.Debugw("worker_push_new_post_skip_invalid_payload", "post_id", payload.PostID)
		return nil
	}
	if c.NotificationService == nil {
		logger.Warnw("worker_push_new_post_skip_service_nil", "post_id", payload.PostID)
		return nil
	}
	if err := c.NotificationService.HandleNewPost(ctx, payload); err != nil {
		logger.Warnw("worker_push_new_post_failed", "post_id", payload.PostID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handlePushNewComment(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.PushNewCommentPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_push_new_comment_unmarshal_failed", "error", err)
		return err
	}
	if payload.PostID == 0 {
		logger.Debugw("worker_push_new_comment_skip_invalid_payload", "post_id", payload.PostID)
		return nil
	}
	if c.NotificationService == nil {
		logger.Warnw("worker_push_new_comment_skip_service_nil", "post_id", payload.PostID)
		return nil
	}
	if err := c.NotificationService.HandleNewComment(ctx, payload); err != nil {
		logger.Warnw("worker_push_new_comment_failed", "post_id", payload.PostID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handlePushChatMessage(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.PushChatMessagePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_push_chat_message_unmarshal_failed", "error", err)
		return err
	}
	if payload.RoomID == 0 || payload.ReceiverAuthUserID == "" {
		logger.Debugw("worker_push_chat_message_skip_invalid_payload", "room_id", payload.RoomID)
		return nil
	}
	if c.NotificationService == nil {
		logger.Warnw("worker_push_chat_message_skip_service_nil", "room_id", payload.RoomID)
		return nil
	}
	if err := c.NotificationService.HandleChatMessage(ctx, payload); err != nil {
		logger.Warnw("worker_push_chat_message_failed", "room_id", payload.RoomID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleSMSHelpdeskNotify(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.SMSHelpdeskNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_sms_helpdesk_unmarshal_failed", "error", err)
		return err
	}
	if payload.QuestionID == 0 {
		logger.Debugw("worker_sms_helpdesk_skip_invalid_payload", "question_id", payload.QuestionID)
		return nil
	}
	if c.NotificationService == nil {
		logger.Warnw("worker_sms_helpdesk_skip_service_nil", "question_id", payload.QuestionID)
		return nil
	}
	if err := c.NotificationService.HandleHelpdeskSMS(ctx, payload); err != nil {
		logger.Warnw("worker_sms_helpdesk_failed", "question_id", payload.QuestionID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleAudioAnalyze(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.AudioAnalyzePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_audio_analyze_unmarshal_failed", "error", err)
		return err
	}
	if payload.ReportID == 0 {
		logger.Debugw("worker_audio_analyze_skip_invalid_payload", "report_id", payload.ReportID)
		return nil
	}
	if c.ReportService == nil {
		logger.Warnw("worker_audio_analyze_skip_service_nil", "report_id", payload.ReportID)
		return nil
	}
	if err := c.ReportService.AnalyzeAudio(ctx, payload.ReportID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			logger.Debugw("worker_audio_analyze_skip_report_not_found", "report_id", payload.ReportID)
			return nil
		}
		logger.Warnw("worker_audio_analyze_failed", "report_id", payload.ReportID, "error", err)
		return err
	}
	return nil
}
