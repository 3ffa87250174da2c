package services

import (
	"readly_backend/internal/models"
	"readly_backend/internal/repositories"
	"readly_backend/pkg/apperrors"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type BookService interface {
	CreateBook(db *gorm.DB, req *models.CreateBookRequest) (*models.Book, error)
	UpdateBook(db *gorm.DB, bookID string, req *models.UpdateBookRequest) (*models.Book, error)
	DeleteBook(db *gorm.DB, bookID string) error
	GetBook(db *gorm.DB, bookID string) (*models.Book, error)
	ListPublished(db *gorm.DB, limit, offset int) ([]models.Book, int64, error)
	ListAll(db *gorm.DB, limit, offset int) ([]models.Book, error)

	CreateChapter(db *gorm.DB, bookID string, req *models.CreateChapterRequest) (*models.Chapter, error)
}

type BookServiceImpl struct {
	bookRepo repositories.BookRepository
}

func NewBookService(bookRepo repositories.BookRepository) BookService {
	return &BookServiceImpl{bookRepo: bookRepo}
}

func (s *BookServiceImpl) CreateBook(db *gorm.DB, req *models.CreateBookRequest) (*models.Book, error) {
	book := &models.Book{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		CoverURL:    req.CoverURL,
		Tags:        pq.StringArray(req.Tags),
		Price:       req.Price,
		Currency:    req.Currency,
		IsPublished: req.IsPublished,
	}
	if book.Currency == "" {
		book.Currency = "USD"
	}
	if err := s.bookRepo.Create(db, book); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return book, nil
}

func (s *BookServiceImpl) UpdateBook(db *gorm.DB, bookID string, req *models.UpdateBookRequest) (*models.Book, error) {
	book, err := s.bookRepo.FindByID(db, bookID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBookNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Description != nil {
		book.Description = *req.Description
	}
	if req.CoverURL != nil {
		book.CoverURL = *req.CoverURL
	}
	if req.Tags != nil {
		book.Tags = pq.StringArray(req.Tags)
	}
	if req.Price != nil {
		book.Price = *req.Price
	}
	if req.Currency != nil {
		book.Currency = *req.Currency
	}
	if req.IsPublished != nil {
		book.IsPublished = *req.IsPublished
	}

	if err := s.bookRepo.Update(db, book); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return book, nil
}

func (s *BookServiceImpl) DeleteBook(db *gorm.DB, bookID string) error {
	if _, err := s.bookRepo.FindByID(db, bookID); err != nil {
		if apperrors.Is(err, repositories.ErrBookNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if err := s.bookRepo.Delete(db, bookID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *BookServiceImpl) GetBook(db *gorm.DB, bookID string) (*models.Book, error) {
	book, err := s.bookRepo.FindByID(db, bookID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBookNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return book, nil
}

func (s *BookServiceImpl) ListPublished(db *gorm.DB, limit, offset int) ([]models.Book, int64, error) {
	books, err := s.bookRepo.FindPublished(db, limit, offset)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	total, err := s.bookRepo.CountPublished(db)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return books, total, nil
}

func (s *BookServiceImpl) ListAll(db *gorm.DB, limit, offset int) ([]models.Book, error) {
	books, err := s.bookRepo.FindAll(db, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return books, nil
}

func (s *BookServiceImpl) CreateChapter(db *gorm.DB, bookID string, req *models.CreateChapterRequest) (*models.Chapter, error) {
	if _, err := s.bookRepo.FindByID(db, bookID); err != nil {
		if apperrors.Is(err, repositories.ErrBookNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	chapter := &models.Chapter{
		BookID:  bookID,
		Number:  req.Number,
		Title:   req.Title,
		Content: req.Content,
	}
	if err := s.bookRepo.CreateChapter(db, chapter); err != nil {
		return nil, apperrors.ErrConflict(err, "book", "Chapter number already exists for this book")
	}
	return chapter, nil
}
