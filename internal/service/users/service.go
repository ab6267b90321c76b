package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaceBooking/internal/auth"
	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	userRepo "github.com/m04kA/SMC-SpaceBooking/internal/infra/storage/user"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/users/models"
	"github.com/m04kA/SMC-SpaceBooking/pkg/ptr"
	"github.com/m04kA/SMC-SpaceBooking/pkg/validation"
)

const (
	adminSeedName       = "관리자"
	adminSeedDepartment = "관리팀"
)

// Service сервис учетных записей
type Service struct {
	userRepo         UserRepository
	hasher           PasswordHasher
	tokens           TokenIssuer
	validator        Validator
	accountTTLMonths int
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(
	userRepo UserRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	validator Validator,
	accountTTLMonths int,
	logger Logger,
) *Service {
	if accountTTLMonths <= 0 {
		accountTTLMonths = domain.DefaultAccountTTLMonths
	}
	return &Service{
		userRepo:         userRepo,
		hasher:           hasher,
		tokens:           tokens,
		validator:        validator,
		accountTTLMonths: accountTTLMonths,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// SignUp регистрирует обычного пользователя
func (s *Service) SignUp(ctx context.Context, req *models.SignUpRequest) (*models.UserResponse, error) {
	req.LoginID = strings.TrimSpace(req.LoginID)
	s.logger.Info("SignUp: loginId=%s", req.LoginID)

	dept, err := s.validate(req, models.SignUpMessages, req.Department, req.CustomDepartment)
	if err != nil {
		s.logger.Warn("SignUp: validation failed for loginId=%s: %v", req.LoginID, err)
		return nil, err
	}

	created, err := s.create(ctx, "SignUp", req.LoginID, req.Password, strings.TrimSpace(req.Name), dept, domain.RoleUser)
	if err != nil {
		return nil, err
	}

	s.logger.Info("SignUp: created user id=%s", created.ID)
	resp := models.FromDomainUser(created, s.timeProvider.Now(), s.accountTTLMonths)
	return &resp, nil
}

// Login проверяет учетные данные и срок аккаунта, выпускает токен
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	req.LoginID = strings.TrimSpace(req.LoginID)
	s.logger.Info("Login: loginId=%s", req.LoginID)

	if _, err := s.validate(req, models.LoginMessages, "", ""); err != nil {
		return nil, err
	}

	u, err := s.userRepo.GetByLoginID(ctx, req.LoginID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: unknown loginId=%s", req.LoginID)
			return nil, ErrUnknownLoginID
		}
		s.logger.Error("Login: repository error for loginId=%s: %v", req.LoginID, err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := s.hasher.Verify(u.PasswordHash, req.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Warn("Login: wrong password for loginId=%s", req.LoginID)
			return nil, ErrWrongPassword
		}
		s.logger.Error("Login: cannot verify password hash of user id=%s: %v", u.ID, err)
		return nil, fmt.Errorf("%w: Login - verify password: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	if u.IsExpired(now, s.accountTTLMonths) {
		expiresAt, _ := u.ExpiresAt(s.accountTTLMonths)
		s.logger.Warn("Login: account id=%s expired at %s", u.ID, expiresAt.Format(domain.DateFormat))
		return nil, &AccountExpiredError{ExpiresAt: expiresAt}
	}

	token, expiresAt, err := s.tokens.Issue(u.Session())
	if err != nil {
		s.logger.Error("Login: failed to issue token for user id=%s: %v", u.ID, err)
		return nil, fmt.Errorf("%w: Login - issue token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: user id=%s logged in", u.ID)
	return &models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      models.FromDomainUser(u, now, s.accountTTLMonths),
	}, nil
}

// List список пользователей для администратора, новые первыми
func (s *Service) List(ctx context.Context, session domain.Session) (*models.UserListResponse, error) {
	s.logger.Info("ListUsers: by user=%s", session.UserID)

	if !session.IsAdmin() {
		s.logger.Warn("ListUsers: user=%s is not admin", session.UserID)
		return nil, ErrForbidden
	}

	list, err := s.userRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListUsers: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	resp := &models.UserListResponse{Users: make([]models.UserResponse, 0, len(list))}
	for _, u := range list {
		resp.Users = append(resp.Users, models.FromDomainUser(u, now, s.accountTTLMonths))
	}
	resp.Total = len(resp.Users)

	return resp, nil
}

// Create создает пользователя от имени администратора. Роль по умолчанию user.
func (s *Service) Create(ctx context.Context, session domain.Session, req *models.CreateUserRequest) (*models.UserResponse, error) {
	req.LoginID = strings.TrimSpace(req.LoginID)
	s.logger.Info("CreateUser: loginId=%s by user=%s", req.LoginID, session.UserID)

	if !session.IsAdmin() {
		s.logger.Warn("CreateUser: user=%s is not admin", session.UserID)
		return nil, ErrForbidden
	}

	dept, err := s.validate(req, models.AdminMessages, req.Department, req.CustomDepartment)
	if err != nil {
		s.logger.Warn("CreateUser: validation failed for loginId=%s: %v", req.LoginID, err)
		return nil, err
	}

	role := domain.RoleUser
	if req.Role != "" {
		role = domain.Role(req.Role)
	}

	created, err := s.create(ctx, "CreateUser", req.LoginID, req.Password, strings.TrimSpace(req.Name), dept, role)
	if err != nil {
		return nil, err
	}

	s.logger.Info("CreateUser: created user id=%s role=%s", created.ID, created.Role)
	resp := models.FromDomainUser(created, s.timeProvider.Now(), s.accountTTLMonths)
	return &resp, nil
}

// Update меняет имя и отдел; пароль только если задан
func (s *Service) Update(ctx context.Context, session domain.Session, id uuid.UUID, req *models.UpdateUserRequest) (*models.UserResponse, error) {
	s.logger.Info("UpdateUser: id=%s by user=%s", id, session.UserID)

	if !session.IsAdmin() {
		s.logger.Warn("UpdateUser: user=%s is not admin", session.UserID)
		return nil, ErrForbidden
	}

	dept, err := s.validate(req, models.AdminMessages, req.Department, req.CustomDepartment)
	if err != nil {
		s.logger.Warn("UpdateUser: validation failed for id=%s: %v", id, err)
		return nil, err
	}

	upd := domain.UserUpdate{
		Name:       ptr.Ptr(strings.TrimSpace(req.Name)),
		Department: &dept,
	}
	if req.Password != "" {
		hash, err := s.hasher.Hash(req.Password)
		if err != nil {
			s.logger.Error("UpdateUser: failed to hash password: %v", err)
			return nil, fmt.Errorf("%w: Update - hash password: %v", ErrInternal, err)
		}
		upd.PasswordHash = &hash
	}

	updated, err := s.userRepo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("UpdateUser: user id=%s not found", id)
			return nil, ErrUserNotFound
		}
		s.logger.Error("UpdateUser: repository error for id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateUser: updated user id=%s", id)
	resp := models.FromDomainUser(updated, s.timeProvider.Now(), s.accountTTLMonths)
	return &resp, nil
}

// Delete удаляет обычного пользователя вместе с его бронированиями
func (s *Service) Delete(ctx context.Context, session domain.Session, id uuid.UUID) error {
	s.logger.Info("DeleteUser: id=%s by user=%s", id, session.UserID)

	if !session.IsAdmin() {
		s.logger.Warn("DeleteUser: user=%s is not admin", session.UserID)
		return ErrForbidden
	}

	target, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("DeleteUser: user id=%s not found", id)
			return ErrUserNotFound
		}
		s.logger.Error("DeleteUser: repository error for id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - get user: %v", ErrInternal, err)
	}

	if target.IsAdmin() {
		s.logger.Warn("DeleteUser: refused to delete admin id=%s", id)
		return ErrCannotDeleteAdmin
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("DeleteUser: repository error for id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteUser: deleted user id=%s", id)
	return nil
}

// EnsureAdmin создает администратора при первом запуске, если логин свободен
func (s *Service) EnsureAdmin(ctx context.Context, loginID, password string) error {
	if loginID == "" || password == "" {
		return nil
	}

	_, err := s.userRepo.GetByLoginID(ctx, loginID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, userRepo.ErrUserNotFound) {
		return fmt.Errorf("%w: EnsureAdmin - repository error: %v", ErrInternal, err)
	}

	created, err := s.create(ctx, "EnsureAdmin", loginID, password, adminSeedName, domain.Other(adminSeedDepartment), domain.RoleAdmin)
	if errors.Is(err, ErrDuplicateLoginID) {
		return nil
	}
	if err != nil {
		return err
	}

	s.logger.Info("EnsureAdmin: created admin account loginId=%s id=%s", loginID, created.ID)
	return nil
}

func (s *Service) create(ctx context.Context, op, loginID, password, name string, dept domain.Department, role domain.Role) (*domain.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("%s: failed to hash password: %v", op, err)
		return nil, fmt.Errorf("%w: %s - hash password: %v", ErrInternal, op, err)
	}

	created, err := s.userRepo.Create(ctx, &domain.User{
		LoginID:      loginID,
		PasswordHash: hash,
		Name:         name,
		Department:   dept,
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrDuplicateLoginID) {
			s.logger.Warn("%s: loginId=%s already in use", op, loginID)
			return nil, ErrDuplicateLoginID
		}
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	return created, nil
}

// validate проверяет теги модели и выбор отдела. Пустой selected пропускает проверку отдела.
func (s *Service) validate(req interface{}, messages validation.Messages, selected, custom string) (domain.Department, error) {
	fields, err := s.validator.Struct(req, messages)
	if err != nil {
		return domain.Department{}, fmt.Errorf("%w: validate: %v", ErrInternal, err)
	}

	errs := domain.FieldErrors(fields)
	if errs == nil {
		errs = domain.FieldErrors{}
	}

	var dept domain.Department
	if selected != "" {
		dept, err = domain.DepartmentFromForm(selected, custom)
		switch {
		case errors.Is(err, domain.ErrCustomDepartmentRequired):
			errs.Add("customDepartment", messages["customDepartment"])
		case err != nil:
			errs.Add("department", messages["department"])
		}
	}

	return dept, errs.Err()
}
