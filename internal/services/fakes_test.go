package services

// In-memory фейки репозиториев. Аргумент db игнорируется: сервисы
// тестируются как чистая оркестрация, персистентность остается
// интеграционным тестам.

import (
	"fmt"
	"time"

	"readly_backend/internal/models"
	"readly_backend/internal/repositories"

	"gorm.io/gorm"
)

// --- users ---

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) put(u *models.User) *models.User {
	if u.ID == "" {
		u.ID = fmt.Sprintf("user-%d", len(f.users)+1)
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeUserRepo) FindByID(_ *gorm.DB, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindByEmail(_ *gorm.DB, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) FindByVerificationToken(_ *gorm.DB, token string) (*models.User, error) {
	for _, u := range f.users {
		if u.VerificationToken == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) Create(_ *gorm.DB, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	f.put(user)
	return nil
}

func (f *fakeUserRepo) Update(_ *gorm.DB, user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) UpdateStatus(_ *gorm.DB, userID string, status models.UserStatus) error {
	if u, ok := f.users[userID]; ok {
		u.Status = status
	}
	return nil
}

func (f *fakeUserRepo) VerifyUser(_ *gorm.DB, userID string) error {
	if u, ok := f.users[userID]; ok {
		u.IsVerified = true
		u.Status = models.UserStatusActive
		u.VerificationToken = ""
	}
	return nil
}

func (f *fakeUserRepo) MarkTrialUsed(_ *gorm.DB, userID string) error {
	if u, ok := f.users[userID]; ok {
		u.TrialUsed = true
	}
	return nil
}

func (f *fakeUserRepo) UpdatePremiumUntil(_ *gorm.DB, userID string, until time.Time) error {
	if u, ok := f.users[userID]; ok {
		u.PremiumUntil = &until
	}
	return nil
}

func (f *fakeUserRepo) FindAll(_ *gorm.DB, limit, offset int) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) CountAll(_ *gorm.DB) (int64, error) {
	return int64(len(f.users)), nil
}

// --- entitlements ---

type fakeEntitlementRepo struct {
	trials  map[string]*models.PremiumTrial
	grants  []models.PremiumAccessGrant
	actions []models.RewardAction
	users   *fakeUserRepo
}

func newFakeEntitlementRepo(users *fakeUserRepo) *fakeEntitlementRepo {
	return &fakeEntitlementRepo{
		trials: make(map[string]*models.PremiumTrial),
		users:  users,
	}
}

func (f *fakeEntitlementRepo) FindTrial(_ *gorm.DB, userID string) (*models.PremiumTrial, error) {
	t, ok := f.trials[userID]
	if !ok {
		return nil, repositories.ErrTrialNotFound
	}
	return t, nil
}

func (f *fakeEntitlementRepo) CreateTrial(db *gorm.DB, trial *models.PremiumTrial) error {
	if _, ok := f.trials[trial.UserID]; ok {
		return fmt.Errorf("duplicate key value violates unique constraint")
	}
	f.trials[trial.UserID] = trial
	f.users.MarkTrialUsed(db, trial.UserID)
	f.users.UpdatePremiumUntil(db, trial.UserID, trial.EndsAt)
	return nil
}

func (f *fakeEntitlementRepo) ApplyAdGrant(db *gorm.DB, grant *models.PremiumAccessGrant, action *models.RewardAction, premiumUntil time.Time) error {
	action.CreatedAt = grant.GrantedAt
	f.grants = append(f.grants, *grant)
	f.actions = append(f.actions, *action)
	f.users.MarkTrialUsed(db, grant.UserID)
	f.users.UpdatePremiumUntil(db, grant.UserID, premiumUntil)
	return nil
}

func (f *fakeEntitlementRepo) FindGrants(_ *gorm.DB, userID string) ([]models.PremiumAccessGrant, error) {
	var out []models.PremiumAccessGrant
	for _, g := range f.grants {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeEntitlementRepo) CountRewardActions(_ *gorm.DB, userID string, action models.RewardActionType, from, to time.Time) (int64, error) {
	var n int64
	for _, a := range f.actions {
		if a.UserID == userID && a.Action == action &&
			!a.CreatedAt.Before(from) && a.CreatedAt.Before(to) {
			n++
		}
	}
	return n, nil
}

func (f *fakeEntitlementRepo) CreateRewardAction(_ *gorm.DB, action *models.RewardAction) error {
	f.actions = append(f.actions, *action)
	return nil
}

func (f *fakeEntitlementRepo) ReplayPremiumUntil(db *gorm.DB, userID string) (*time.Time, error) {
	var max *time.Time
	if t, ok := f.trials[userID]; ok {
		max = &t.EndsAt
	}
	for i := range f.grants {
		if f.grants[i].UserID == userID {
			if max == nil || f.grants[i].ExpiresAt.After(*max) {
				max = &f.grants[i].ExpiresAt
			}
		}
	}
	return max, nil
}

func (f *fakeEntitlementRepo) GetPlatformStats(_ *gorm.DB, now time.Time) (*repositories.PlatformStats, error) {
	return &repositories.PlatformStats{
		TotalTrials:   int64(len(f.trials)),
		TotalAdGrants: int64(len(f.grants)),
		RewardActions: int64(len(f.actions)),
	}, nil
}

// --- chapter unlocks ---

type fakeUnlockRepo struct {
	unlocks map[string]bool // key user|book|number
	actions []models.RewardAction
}

func newFakeUnlockRepo() *fakeUnlockRepo {
	return &fakeUnlockRepo{unlocks: make(map[string]bool)}
}

func unlockKey(userID, bookID string, n int) string {
	return fmt.Sprintf("%s|%s|%d", userID, bookID, n)
}

func (f *fakeUnlockRepo) InsertIdempotent(_ *gorm.DB, unlock *models.ChapterUnlock, action *models.RewardAction) (bool, error) {
	key := unlockKey(unlock.UserID, unlock.BookID, unlock.ChapterNumber)
	if f.unlocks[key] {
		return false, nil
	}
	f.unlocks[key] = true
	f.actions = append(f.actions, *action)
	return true, nil
}

func (f *fakeUnlockRepo) Exists(_ *gorm.DB, userID, bookID string, chapterNumber int) (bool, error) {
	return f.unlocks[unlockKey(userID, bookID, chapterNumber)], nil
}

func (f *fakeUnlockRepo) FindNumbersByUserAndBook(_ *gorm.DB, userID, bookID string) ([]int, error) {
	var out []int
	for n := 1; n <= 1000; n++ {
		if f.unlocks[unlockKey(userID, bookID, n)] {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeUnlockRepo) CountByUser(_ *gorm.DB, userID string) (int64, error) {
	var n int64
	for k, v := range f.unlocks {
		if v && len(k) > len(userID) && k[:len(userID)] == userID {
			n++
		}
	}
	return n, nil
}

// --- journal ---

type fakeJournalRepo struct {
	rows    map[string]*models.JournalAccess
	actions []models.RewardAction
}

func newFakeJournalRepo() *fakeJournalRepo {
	return &fakeJournalRepo{rows: make(map[string]*models.JournalAccess)}
}

func (f *fakeJournalRepo) FindByUser(_ *gorm.DB, userID string) (*models.JournalAccess, error) {
	a, ok := f.rows[userID]
	if !ok {
		return nil, repositories.ErrJournalAccessNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeJournalRepo) EnsureRow(db *gorm.DB, access *models.JournalAccess) (*models.JournalAccess, error) {
	if existing, ok := f.rows[access.UserID]; ok {
		cp := *existing
		return &cp, nil
	}
	f.rows[access.UserID] = access
	cp := *access
	return &cp, nil
}

func (f *fakeJournalRepo) ExtendAccess(_ *gorm.DB, userID string, until time.Time, action *models.RewardAction) error {
	if a, ok := f.rows[userID]; ok {
		a.AccessUntil = &until
	}
	f.actions = append(f.actions, *action)
	return nil
}

// --- downloads ---

type fakeDownloadRepo struct {
	counters map[string]*models.DownloadCounter // key user|book
	actions  []models.RewardAction
}

func newFakeDownloadRepo() *fakeDownloadRepo {
	return &fakeDownloadRepo{counters: make(map[string]*models.DownloadCounter)}
}

func (f *fakeDownloadRepo) FindByUserAndBook(_ *gorm.DB, userID, bookID string) (*models.DownloadCounter, error) {
	c, ok := f.counters[userID+"|"+bookID]
	if !ok {
		return nil, repositories.ErrDownloadCounterNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeDownloadRepo) RecordWatch(_ *gorm.DB, userID, bookID string, adsRequired int, action *models.RewardAction, now time.Time) (*models.DownloadCounter, error) {
	key := userID + "|" + bookID
	c, ok := f.counters[key]
	if !ok {
		c = &models.DownloadCounter{
			UserID:      userID,
			BookID:      bookID,
			AdsRequired: adsRequired,
		}
		f.counters[key] = c
	}
	if c.IsUnlocked {
		cp := *c
		return &cp, nil
	}
	c.AdsWatched++
	if c.AdsWatched >= c.AdsRequired {
		c.IsUnlocked = true
		c.UnlockedAt = &now
	}
	f.actions = append(f.actions, *action)
	cp := *c
	return &cp, nil
}

// --- progress ---

type fakeProgressRepo struct {
	records map[string]*models.ProgressRecord // key user|book|number
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{records: make(map[string]*models.ProgressRecord)}
}

func progressKey(userID, bookID string, n int) string {
	return fmt.Sprintf("%s|%s|%d", userID, bookID, n)
}

func (f *fakeProgressRepo) UpsertCompleted(_ *gorm.DB, userID, bookID string, chapterNumber int) error {
	key := progressKey(userID, bookID, chapterNumber)
	if r, ok := f.records[key]; ok {
		r.Completed = true
		return nil
	}
	f.records[key] = &models.ProgressRecord{
		UserID: userID, BookID: bookID, ChapterNumber: chapterNumber, Completed: true,
	}
	return nil
}

func (f *fakeProgressRepo) UpsertReflection(_ *gorm.DB, userID, bookID string, chapterNumber int, reflection string) error {
	key := progressKey(userID, bookID, chapterNumber)
	if r, ok := f.records[key]; ok {
		r.Reflection = reflection
		return nil
	}
	f.records[key] = &models.ProgressRecord{
		UserID: userID, BookID: bookID, ChapterNumber: chapterNumber, Reflection: reflection,
	}
	return nil
}

func (f *fakeProgressRepo) FindByUserAndBook(_ *gorm.DB, userID, bookID string) ([]models.ProgressRecord, error) {
	var out []models.ProgressRecord
	for _, r := range f.records {
		if r.UserID == userID && r.BookID == bookID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeProgressRepo) FindByUser(_ *gorm.DB, userID string) ([]models.ProgressRecord, error) {
	var out []models.ProgressRecord
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

// --- books ---

type fakeBookRepo struct {
	books    map[string]*models.Book
	chapters map[string][]models.Chapter
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{
		books:    make(map[string]*models.Book),
		chapters: make(map[string][]models.Chapter),
	}
}

func (f *fakeBookRepo) Create(_ *gorm.DB, book *models.Book) error {
	if book.ID == "" {
		book.ID = fmt.Sprintf("book-%d", len(f.books)+1)
	}
	f.books[book.ID] = book
	return nil
}

func (f *fakeBookRepo) Update(_ *gorm.DB, book *models.Book) error {
	f.books[book.ID] = book
	return nil
}

func (f *fakeBookRepo) Delete(_ *gorm.DB, id string) error {
	delete(f.books, id)
	delete(f.chapters, id)
	return nil
}

func (f *fakeBookRepo) FindByID(_ *gorm.DB, id string) (*models.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, repositories.ErrBookNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookRepo) FindPublished(_ *gorm.DB, limit, offset int) ([]models.Book, error) {
	var out []models.Book
	for _, b := range f.books {
		if b.IsPublished {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookRepo) CountPublished(_ *gorm.DB) (int64, error) {
	var n int64
	for _, b := range f.books {
		if b.IsPublished {
			n++
		}
	}
	return n, nil
}

func (f *fakeBookRepo) FindAll(_ *gorm.DB, limit, offset int) ([]models.Book, error) {
	var out []models.Book
	for _, b := range f.books {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBookRepo) CreateChapter(_ *gorm.DB, chapter *models.Chapter) error {
	for _, c := range f.chapters[chapter.BookID] {
		if c.Number == chapter.Number {
			return fmt.Errorf("duplicate key value violates unique constraint")
		}
	}
	f.chapters[chapter.BookID] = append(f.chapters[chapter.BookID], *chapter)
	return nil
}

func (f *fakeBookRepo) FindChapter(_ *gorm.DB, bookID string, number int) (*models.Chapter, error) {
	for _, c := range f.chapters[bookID] {
		if c.Number == number {
			cp := c
			return &cp, nil
		}
	}
	return nil, repositories.ErrChapterNotFound
}

func (f *fakeBookRepo) ListChapters(_ *gorm.DB, bookID string) ([]models.Chapter, error) {
	out := make([]models.Chapter, len(f.chapters[bookID]))
	copy(out, f.chapters[bookID])
	for i := range out {
		out[i].Content = ""
	}
	return out, nil
}

func (f *fakeBookRepo) CountChapters(_ *gorm.DB, bookID string) (int64, error) {
	return int64(len(f.chapters[bookID])), nil
}

// --- purchases ---

type fakePurchaseRepo struct {
	purchases map[string]*models.Purchase // key user|book
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{purchases: make(map[string]*models.Purchase)}
}

func (f *fakePurchaseRepo) CreateIdempotent(_ *gorm.DB, purchase *models.Purchase) (*models.Purchase, bool, error) {
	key := purchase.UserID + "|" + purchase.BookID
	if existing, ok := f.purchases[key]; ok {
		cp := *existing
		return &cp, false, nil
	}
	if purchase.ID == "" {
		purchase.ID = fmt.Sprintf("purchase-%d", len(f.purchases)+1)
	}
	f.purchases[key] = purchase
	cp := *purchase
	return &cp, true, nil
}

func (f *fakePurchaseRepo) FindByID(_ *gorm.DB, id string) (*models.Purchase, error) {
	for _, p := range f.purchases {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repositories.ErrPurchaseNotFound
}

func (f *fakePurchaseRepo) FindByUserAndBook(_ *gorm.DB, userID, bookID string) (*models.Purchase, error) {
	p, ok := f.purchases[userID+"|"+bookID]
	if !ok {
		return nil, repositories.ErrPurchaseNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePurchaseRepo) FindByUser(_ *gorm.DB, userID string) ([]models.Purchase, error) {
	var out []models.Purchase
	for _, p := range f.purchases {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePurchaseRepo) HasActivePurchase(_ *gorm.DB, userID, bookID string) (bool, error) {
	p, ok := f.purchases[userID+"|"+bookID]
	return ok && p.Status == models.PurchaseStatusActive, nil
}

func (f *fakePurchaseRepo) MarkRefunded(_ *gorm.DB, id string, at time.Time) error {
	for _, p := range f.purchases {
		if p.ID == id {
			p.Status = models.PurchaseStatusRefunded
			p.RefundedAt = &at
		}
	}
	return nil
}

func (f *fakePurchaseRepo) CountByStatus(_ *gorm.DB, status models.PurchaseStatus) (int64, error) {
	var n int64
	for _, p := range f.purchases {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}
