package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/quorum-api/internal/domain/entity"
	"github.com/yourusername/quorum-api/internal/domain/repository"
	apperrors "github.com/yourusername/quorum-api/internal/pkg/errors"
)

// MaxCommentLength - максимальная длина текста комментария
const MaxCommentLength = 1000

// CommentService предоставляет методы для работы с комментариями к вопросам
type CommentService struct {
	commentRepo  repository.CommentRepository
	questionRepo repository.QuestionRepository
	roleRepo     repository.RoleRepository
	notifier     ModerationNotifier
}

// NewCommentService создает новый сервис комментариев
func NewCommentService(
	commentRepo repository.CommentRepository,
	questionRepo repository.QuestionRepository,
	roleRepo repository.RoleRepository,
	notifier ModerationNotifier,
) *CommentService {
	return &CommentService{
		commentRepo:  commentRepo,
		questionRepo: questionRepo,
		roleRepo:     roleRepo,
		notifier:     notifier,
	}
}

// AddComment добавляет комментарий пользователя к вопросу
func (s *CommentService) AddComment(userID, questionID uint, text string) (*entity.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", apperrors.ErrValidation)
	}
	if len(text) > MaxCommentLength {
		return nil, fmt.Errorf("%w: comment text exceeds %d characters", apperrors.ErrValidation, MaxCommentLength)
	}

	// Вопрос должен существовать
	if _, err := s.questionRepo.GetByID(questionID); err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		QuestionID: questionID,
		UserID:     userID,
		Text:       text,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments возвращает комментарии вопроса с пагинацией, новые первыми
func (s *CommentService) ListComments(questionID uint, page, pageSize int) ([]entity.Comment, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	} else if pageSize > 100 {
		pageSize = 100
	}
	return s.commentRepo.GetByQuestionID(questionID, pageSize, (page-1)*pageSize)
}

// DeleteComment удаляет комментарий. Разрешено автору и администратору.
func (s *CommentService) DeleteComment(actorID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		return err
	}

	isAdmin, err := s.roleRepo.IsAdmin(actorID)
	if err != nil {
		return err
	}
	if !comment.CanBeDeletedBy(actorID, isAdmin) {
		return fmt.Errorf("%w: only the author or an admin can delete a comment", apperrors.ErrForbidden)
	}

	return s.commentRepo.Delete(commentID)
}

// ReportComment помечает комментарий для модерации и уведомляет
// администраторов. Сбой уведомления не откатывает пометку.
func (s *CommentService) ReportComment(ctx context.Context, commentID uint) error {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		return err
	}

	if err := s.commentRepo.MarkReported(commentID); err != nil {
		return err
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyCommentReported(ctx, comment.ID, comment.QuestionID, comment.Text); err != nil {
			log.Printf("[CommentService] Не удалось отправить уведомление о жалобе на комментарий #%d: %v", commentID, err)
		}
	}
	return nil
}
