package services

import (
  "context"
  "errors"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/masarhq/masar-backend/internal/logger"
  "github.com/masarhq/masar-backend/internal/repos"
  "github.com/masarhq/masar-backend/internal/types"
)

var ErrEmailTaken = errors.New("email already registered")

type UserService interface {
  CreateUser(ctx context.Context, tx *gorm.DB, email, firstName, lastName string) (*types.User, error)
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.User, error)
}

type userService struct {
  db       *gorm.DB
  log      *logger.Logger
  userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo) UserService {
  serviceLog := baseLog.With("service", "UserService")
  return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

func (us *userService) CreateUser(ctx context.Context, tx *gorm.DB, email, firstName, lastName string) (*types.User, error) {
  exists, err := us.userRepo.EmailExists(ctx, tx, email)
  if err != nil {
    return nil, fmt.Errorf("check email: %w", err)
  }
  if exists {
    return nil, ErrEmailTaken
  }

  now := time.Now()
  user := &types.User{
    ID:        uuid.New(),
    Email:     email,
    FirstName: firstName,
    LastName:  lastName,
    CreatedAt: now,
    UpdatedAt: now,
  }
  if _, err := us.userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
    if errors.Is(err, gorm.ErrDuplicatedKey) {
      return nil, ErrEmailTaken
    }
    return nil, fmt.Errorf("create user: %w", err)
  }
  return user, nil
}

func (us *userService) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.User, error) {
  users, err := us.userRepo.GetByIDs(ctx, tx, []uuid.UUID{id})
  if err != nil {
    return nil, fmt.Errorf("get user: %w", err)
  }
  if len(users) == 0 || users[0] == nil {
    return nil, ErrUserNotFound
  }
  return users[0], nil
}
