package services

import (
	"readly_backend/internal/entitlement"
	"readly_backend/internal/models"
	"readly_backend/internal/repositories"
	"readly_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ProgressService interface {
	MarkComplete(db *gorm.DB, userID, bookID string, chapterNumber int) error
	SaveReflection(db *gorm.DB, userID, bookID string, chapterNumber int, reflection string) error
	GetProgress(db *gorm.DB, userID, bookID string) (*models.BookProgressPayload, error)

	// Sync сливает клиентский снимок с серверным: по completed сервер
	// авторитетен (непустой серверный список замещает клиентский), по
	// заметкам конфликт ключа решает сервер. Результат возвращается
	// клиенту как замена локального кэша и НЕ пишется в БД: на сервер
	// данные попадают только явными MarkComplete/SaveReflection.
	Sync(db *gorm.DB, userID string, req *models.SyncProgressRequest) (*models.SyncProgressResponse, error)
}

type ProgressServiceImpl struct {
	progressRepo repositories.ProgressRepository
}

func NewProgressService(progressRepo repositories.ProgressRepository) ProgressService {
	return &ProgressServiceImpl{progressRepo: progressRepo}
}

func (s *ProgressServiceImpl) MarkComplete(db *gorm.DB, userID, bookID string, chapterNumber int) error {
	if err := s.progressRepo.UpsertCompleted(db, userID, bookID, chapterNumber); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ProgressServiceImpl) SaveReflection(db *gorm.DB, userID, bookID string, chapterNumber int, reflection string) error {
	if err := s.progressRepo.UpsertReflection(db, userID, bookID, chapterNumber, reflection); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ProgressServiceImpl) GetProgress(db *gorm.DB, userID, bookID string) (*models.BookProgressPayload, error) {
	records, err := s.progressRepo.FindByUserAndBook(db, userID, bookID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	payload := recordsToPayload(records)[bookID]
	return &payload, nil
}

func (s *ProgressServiceImpl) Sync(db *gorm.DB, userID string, req *models.SyncProgressRequest) (*models.SyncProgressResponse, error) {
	records, err := s.progressRepo.FindByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	client := make(entitlement.Snapshot, len(req.Books))
	for bookID, p := range req.Books {
		client[bookID] = entitlement.BookProgress{
			CompletedChapters: p.CompletedChapters,
			Reflections:       p.Reflections,
		}
	}

	server := make(entitlement.Snapshot)
	for bookID, p := range recordsToPayload(records) {
		server[bookID] = entitlement.BookProgress{
			CompletedChapters: p.CompletedChapters,
			Reflections:       p.Reflections,
		}
	}

	merged := entitlement.MergeSnapshot(client, server)

	// Слитый снимок НЕ персистится: сервер меняется только явными
	// действиями пользователя, клиент лишь заменяет свой кэш ответом
	resp := &models.SyncProgressResponse{Books: make(map[string]models.BookProgressPayload, len(merged))}
	for bookID, p := range merged {
		resp.Books[bookID] = models.BookProgressPayload{
			CompletedChapters: p.CompletedChapters,
			Reflections:       p.Reflections,
		}
	}
	return resp, nil
}

func recordsToPayload(records []models.ProgressRecord) map[string]models.BookProgressPayload {
	out := make(map[string]models.BookProgressPayload)
	for i := range records {
		rec := &records[i]
		p := out[rec.BookID]
		if rec.Completed {
			p.CompletedChapters = append(p.CompletedChapters, rec.ChapterNumber)
		}
		if rec.Reflection != "" {
			if p.Reflections == nil {
				p.Reflections = make(map[int]string)
			}
			p.Reflections[rec.ChapterNumber] = rec.Reflection
		}
		out[rec.BookID] = p
	}
	return out
}
