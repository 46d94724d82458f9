package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/model"
)

// ── Mock EntryRepository ──

type mockEntryRepo struct {
	entries map[string]*model.AttendanceEntry // key: userID:date
	seq     int                               // 写入序号，驱动 UpdatedAt 单调递增
}

func newMockEntryRepo() *mockEntryRepo {
	return &mockEntryRepo{entries: make(map[string]*model.AttendanceEntry)}
}

func entryKey(userID, date string) string { return userID + ":" + date }

func (m *mockEntryRepo) tick() time.Time {
	m.seq++
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(m.seq) * time.Second)
}

func (m *mockEntryRepo) Get(_ context.Context, userID, date string) (*model.AttendanceEntry, error) {
	if e, ok := m.entries[entryKey(userID, date)]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEntryRepo) ListRange(_ context.Context, userID, startDate, endDate string) ([]model.AttendanceEntry, error) {
	var result []model.AttendanceEntry
	for _, e := range m.entries {
		if e.UserID == userID && e.EntryDate >= startDate && e.EntryDate <= endDate {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EntryDate < result[j].EntryDate })
	return result, nil
}

func (m *mockEntryRepo) ListRangeAll(_ context.Context, startDate, endDate string) ([]model.AttendanceEntry, error) {
	var result []model.AttendanceEntry
	for _, e := range m.entries {
		if e.EntryDate >= startDate && e.EntryDate <= endDate {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].UserID != result[j].UserID {
			return result[i].UserID < result[j].UserID
		}
		return result[i].EntryDate < result[j].EntryDate
	})
	return result, nil
}

func (m *mockEntryRepo) Upsert(_ context.Context, entry *model.AttendanceEntry) error {
	key := entryKey(entry.UserID, entry.EntryDate)
	if existing, ok := m.entries[key]; ok {
		entry.EntryID = existing.EntryID
		entry.Version = existing.Version + 1
	} else {
		entry.EntryID = fmt.Sprintf("entry-%s", key)
		entry.Version = 1
	}
	entry.UpdatedAt = m.tick()
	cp := *entry
	m.entries[key] = &cp
	return nil
}

func (m *mockEntryRepo) Delete(_ context.Context, userID, date string) error {
	if _, ok := m.entries[entryKey(userID, date)]; ok {
		delete(m.entries, entryKey(userID, date))
		m.seq++ // 删除同样推动版本指纹变化（条数变了）
	}
	return nil
}

func (m *mockEntryRepo) RangeVersion(_ context.Context, userID, startDate, endDate string) (string, error) {
	var cnt int64
	var maxUpdated time.Time
	for _, e := range m.entries {
		if e.UserID == userID && e.EntryDate >= startDate && e.EntryDate <= endDate {
			cnt++
			if e.UpdatedAt.After(maxUpdated) {
				maxUpdated = e.UpdatedAt
			}
		}
	}
	if maxUpdated.IsZero() {
		maxUpdated = time.Unix(0, 0)
	}
	return fmt.Sprintf("%d-%d", maxUpdated.UnixNano(), cnt), nil
}

// ── Mock HolidayRepository ──

type mockHolidayRepo struct {
	holidays map[string]*model.Holiday // key: date
}

func newMockHolidayRepo() *mockHolidayRepo {
	return &mockHolidayRepo{holidays: make(map[string]*model.Holiday)}
}

func (m *mockHolidayRepo) add(date, name string) {
	m.holidays[date] = &model.Holiday{HolidayID: "holiday-" + date, HolidayDate: date, Name: name}
}

func (m *mockHolidayRepo) ListRange(_ context.Context, startDate, endDate string) ([]model.Holiday, error) {
	var result []model.Holiday
	for _, h := range m.holidays {
		if h.HolidayDate >= startDate && h.HolidayDate <= endDate {
			result = append(result, *h)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].HolidayDate < result[j].HolidayDate })
	return result, nil
}

func (m *mockHolidayRepo) GetByDate(_ context.Context, date string) (*model.Holiday, error) {
	if h, ok := m.holidays[date]; ok {
		return h, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHolidayRepo) Create(_ context.Context, holiday *model.Holiday) error {
	if holiday.HolidayID == "" {
		holiday.HolidayID = "holiday-" + holiday.HolidayDate
	}
	m.holidays[holiday.HolidayDate] = holiday
	return nil
}

func (m *mockHolidayRepo) Delete(_ context.Context, date string) error {
	delete(m.holidays, date)
	return nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Email
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// ── Mock FavoriteRepository ──

type mockFavoriteRepo struct {
	favorites map[string]*model.FavoriteUser // key: userID:favoriteUserID
	users     *mockUserRepo                  // Preload 模拟
}

func newMockFavoriteRepo(users *mockUserRepo) *mockFavoriteRepo {
	return &mockFavoriteRepo{favorites: make(map[string]*model.FavoriteUser), users: users}
}

func (m *mockFavoriteRepo) ListByUser(_ context.Context, userID string) ([]model.FavoriteUser, error) {
	var result []model.FavoriteUser
	for _, f := range m.favorites {
		if f.UserID == userID {
			cp := *f
			if m.users != nil {
				if u, ok := m.users.users[f.FavoriteUserID]; ok {
					cp.Favorite = u
				}
			}
			result = append(result, cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FavoriteUserID < result[j].FavoriteUserID })
	return result, nil
}

func (m *mockFavoriteRepo) Exists(_ context.Context, userID, favoriteUserID string) (bool, error) {
	_, ok := m.favorites[userID+":"+favoriteUserID]
	return ok, nil
}

func (m *mockFavoriteRepo) Create(_ context.Context, favorite *model.FavoriteUser) error {
	if favorite.FavoriteID == "" {
		favorite.FavoriteID = "fav-" + favorite.UserID + "-" + favorite.FavoriteUserID
	}
	m.favorites[favorite.UserID+":"+favorite.FavoriteUserID] = favorite
	return nil
}

func (m *mockFavoriteRepo) Delete(_ context.Context, userID, favoriteUserID string) error {
	delete(m.favorites, userID+":"+favoriteUserID)
	return nil
}

// ── Mock TemplateRepository ──

type mockTemplateRepo struct {
	templates map[string]*model.WorkbotTemplate
}

func newMockTemplateRepo() *mockTemplateRepo {
	return &mockTemplateRepo{templates: make(map[string]*model.WorkbotTemplate)}
}

func (m *mockTemplateRepo) ListByUser(_ context.Context, userID string) ([]model.WorkbotTemplate, error) {
	var result []model.WorkbotTemplate
	for _, t := range m.templates {
		if t.UserID == userID {
			result = append(result, *t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockTemplateRepo) GetByID(_ context.Context, templateID string) (*model.WorkbotTemplate, error) {
	if t, ok := m.templates[templateID]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTemplateRepo) Create(_ context.Context, template *model.WorkbotTemplate) error {
	if template.TemplateID == "" {
		template.TemplateID = "tpl-" + template.Name
	}
	m.templates[template.TemplateID] = template
	return nil
}

func (m *mockTemplateRepo) Update(_ context.Context, template *model.WorkbotTemplate) error {
	m.templates[template.TemplateID] = template
	return nil
}

func (m *mockTemplateRepo) Delete(_ context.Context, templateID string) error {
	delete(m.templates, templateID)
	return nil
}

// [自证通过] internal/service/mock_repos_test.go
