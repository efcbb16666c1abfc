package accounts

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/anoixa/tripill/cache"
	"github.com/anoixa/tripill/database/models"
	"github.com/anoixa/tripill/database/repo/accounts"
	"github.com/anoixa/tripill/internal/apperr"
	"github.com/anoixa/tripill/utils"
	"github.com/anoixa/tripill/utils/password"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// Profile 对外展示的用户资料，不含密码
type Profile struct {
	ID        uint          `json:"id"`
	Email     string        `json:"email"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Image     string        `json:"image"`
	Gender    models.Gender `json:"gender"`
}

func profileOf(u *models.User) *Profile {
	return &Profile{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Image:     u.Image,
		Gender:    u.Gender,
	}
}

// NewUser 创建用户所需的信息
type NewUser struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Gender    models.Gender
}

// Service 身份服务：按ID查询用户资料（带缓存），创建和校验账户
type Service struct {
	repo  *accounts.Repository
	cache cache.Provider
	ttl   time.Duration
	group singleflight.Group
}

// NewService 创建身份服务，cacheProvider 为 nil 时不使用缓存
func NewService(repo *accounts.Repository, cacheProvider cache.Provider, ttl time.Duration) *Service {
	return &Service{repo: repo, cache: cacheProvider, ttl: ttl}
}

// GetUser 获取用户资料，并发的相同查询只访问一次数据库
func (s *Service) GetUser(ctx context.Context, userID uint) (*Profile, error) {
	key := cache.User.BuildID(userID)

	if s.cache != nil {
		var cached Profile
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			return &cached, nil
		}
		if !cache.IsCacheMiss(err) {
			log.Printf("Failed to read user %d from cache: %v", userID, err)
		}
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		user, err := s.repo.GetUserByID(ctx, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user %d not found", userID)
		}
		if err != nil {
			return nil, apperr.Internal(err, "load user %d", userID)
		}

		profile := profileOf(user)
		if s.cache != nil {
			if err := s.cache.Set(ctx, key, profile, s.ttl); err != nil {
				log.Printf("Failed to cache user %d: %v", userID, err)
			}
		}
		return profile, nil
	})
	if err != nil {
		return nil, err
	}

	// 共享结果需要拷贝，避免调用方互相修改
	profile := *v.(*Profile)
	return &profile, nil
}

// GetUsers 批量获取用户资料，顺序与 ids 一致
func (s *Service) GetUsers(ctx context.Context, ids []uint) ([]*Profile, error) {
	profiles := make([]*Profile, 0, len(ids))
	for _, id := range ids {
		profile, err := s.GetUser(ctx, id)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

// CurrentUser 返回请求上下文中已认证的用户
func (s *Service) CurrentUser(ctx context.Context) (*Profile, error) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return nil, apperr.Forbidden("request is not authenticated")
	}
	return s.GetUser(ctx, userID)
}

// CreateUser 创建账户，密码以 argon2id 存储
func (s *Service) CreateUser(ctx context.Context, in NewUser) (*Profile, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperr.Invalid("invalid email address %q", in.Email)
	}
	if len(in.Password) < 8 {
		return nil, apperr.Invalid("password must be at least 8 characters")
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, apperr.Internal(err, "hash password")
	}

	gender := in.Gender
	if gender == 0 {
		gender = models.GenderOther
	}

	user := &models.User{
		Email:     email,
		Password:  hash,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Gender:    gender,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, accounts.ErrEmailTaken) {
			return nil, apperr.Conflict("email %s is already registered", email)
		}
		return nil, apperr.Internal(err, "create user")
	}

	utils.LogIfDevf("Created user %d <%s>", user.ID, utils.SanitizeLogEmail(email))
	return profileOf(user), nil
}

// Authenticate 校验邮箱和密码
func (s *Service) Authenticate(ctx context.Context, email, plain string) (*Profile, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Invalid("invalid email or password")
	}
	if err != nil {
		return nil, apperr.Internal(err, "load user by email")
	}

	ok, err := password.Verify(plain, user.Password)
	if err != nil {
		return nil, apperr.Internal(err, "verify password of user %d", user.ID)
	}
	if !ok {
		return nil, apperr.Invalid("invalid email or password")
	}
	return profileOf(user), nil
}

// Invalidate 删除用户资料缓存
func (s *Service) Invalidate(ctx context.Context, userID uint) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Delete(ctx, cache.User.BuildID(userID)); err != nil {
		return fmt.Errorf("failed to invalidate user %d: %w", userID, err)
	}
	return nil
}

// InvalidateAll 删除全部用户资料缓存，返回删除数量（未知时为 -1）
func (s *Service) InvalidateAll(ctx context.Context) (int, error) {
	if s.cache == nil {
		return 0, nil
	}
	return cache.Clear(ctx, s.cache, cache.User)
}
