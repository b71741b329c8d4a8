package store

import (
	"context"
	"strings"

	"hostel-backend/internal/model"
)

func (s *gormStore) CreateUser(ctx context.Context, u *model.User) error {
	if u.Role == "" {
		u.Role = model.RoleStudent
	}
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicate(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (s *gormStore) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *gormStore) UserByID(ctx context.Context, id uint) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *gormStore) ListUsers(ctx context.Context, f UserFilter, pp PageParams) (Page[model.User], error) {
	pp = pp.Normalize()
	q := s.db.WithContext(ctx).Model(&model.User{})
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.Search != "" {
		pat := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pat, pat)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return Page[model.User]{}, err
	}

	var users []model.User
	if err := q.Order(listOrder).Offset(pp.offset()).Limit(pp.Limit).Find(&users).Error; err != nil {
		return Page[model.User]{}, err
	}
	return Page[model.User]{Items: users, Total: total, Page: pp.Page, Limit: pp.Limit}, nil
}

func (s *gormStore) SetUserRole(ctx context.Context, id uint, role string) (*model.User, error) {
	if !model.ValidRole(role) {
		return nil, ErrInvalidRole
	}
	var u model.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	if err := s.db.WithContext(ctx).Model(&u).Update("role", role).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUserFields patches only the given columns. An empty fields map is
// a successful no-op returning the current record.
func (s *gormStore) UpdateUserFields(ctx context.Context, id uint, fields map[string]any) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	if len(fields) == 0 {
		return &u, nil
	}
	if err := s.db.WithContext(ctx).Model(&u).Updates(fields).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *gormStore) AdminStats(ctx context.Context) (AdminStats, error) {
	var st AdminStats
	db := s.db.WithContext(ctx)
	if err := db.Model(&model.User{}).Count(&st.Users).Error; err != nil {
		return st, err
	}
	if err := db.Model(&model.LeaveRequest{}).Where("status = ?", model.LeavePending).Count(&st.PendingLeaves).Error; err != nil {
		return st, err
	}
	if err := db.Model(&model.Complaint{}).Where("status <> ?", model.ComplaintResolved).Count(&st.OpenComplaints).Error; err != nil {
		return st, err
	}
	if err := db.Model(&model.Poll{}).Count(&st.ActivePolls).Error; err != nil {
		return st, err
	}
	return st, nil
}

func (s *gormStore) StudentStats(ctx context.Context, userID uint) (StudentStats, error) {
	var st StudentStats
	db := s.db.WithContext(ctx)
	if err := db.Model(&model.LeaveRequest{}).Where("user_id = ? AND status = ?", userID, model.LeavePending).Count(&st.PendingLeaves).Error; err != nil {
		return st, err
	}
	if err := db.Model(&model.Complaint{}).Where("user_id = ? AND status <> ?", userID, model.ComplaintResolved).Count(&st.ActiveComplaints).Error; err != nil {
		return st, err
	}
	if err := db.Model(&model.Poll{}).Count(&st.ActivePolls).Error; err != nil {
		return st, err
	}
	return st, nil
}

// userSummaries fetches only the users referenced by a page of records
// and returns an id-keyed lookup map for enrichment.
func (s *gormStore) userSummaries(ctx context.Context, ids []uint) (map[uint]UserSummary, error) {
	m := make(map[uint]UserSummary, len(ids))
	if len(ids) == 0 {
		return m, nil
	}
	seen := make(map[uint]struct{}, len(ids))
	distinct := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}

	var users []model.User
	if err := s.db.WithContext(ctx).
		Select("id", "name", "email", "room_number").
		Where("id IN ?", distinct).
		Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		m[u.ID] = UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, RoomNumber: u.RoomNumber}
	}
	return m, nil
}

// summaryFor resolves an owner id against the lookup map, falling back to
// the Unknown sentinel for deleted users instead of failing the listing.
func summaryFor(m map[uint]UserSummary, id uint) UserSummary {
	if u, ok := m[id]; ok {
		return u
	}
	return UserSummary{Name: "Unknown"}
}
