package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/campotec/campotec-api/internal/application/dto"
	"github.com/campotec/campotec-api/internal/domain"
	"github.com/campotec/campotec-api/internal/domain/entity"
	"github.com/campotec/campotec-api/internal/domain/repository"
	"github.com/campotec/campotec-api/pkg/jwt"
)

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticação: registro e login.
type UseCase struct {
	userRepo   repository.UserRepository
	branchRepo repository.BranchRepository
	jwtCfg     JWTConfig
}

// NewUseCase constrói o caso de uso de auth.
func NewUseCase(userRepo repository.UserRepository, branchRepo repository.BranchRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, branchRepo: branchRepo, jwtCfg: jwtCfg}
}

// Register cria o usuário (hash bcrypt) e o papel dele no tenant. Devolve
// ErrEmailAlreadyExists se o e-mail já tem papel naquele tenant.
func (uc *UseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Password == "" || in.TenantID == "" {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleTechnician
	}
	switch role {
	case entity.RoleSuperadmin, entity.RoleAdmin, entity.RoleManager, entity.RoleTechnician:
	default:
		return nil, domain.ErrInvalidInput
	}
	if in.BranchID != nil {
		branch, err := uc.branchRepo.GetByID(*in.BranchID)
		if err != nil {
			return nil, err
		}
		if branch == nil || branch.TenantID != in.TenantID {
			return nil, domain.ErrNotFound
		}
	}

	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if user == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		name := in.Name
		if name == "" {
			name = in.Email
		}
		user = &entity.User{
			ID:           uuid.New().String(),
			Email:        in.Email,
			PasswordHash: string(hash),
			Name:         name,
			Status:       "active",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := uc.userRepo.Create(user); err != nil {
			return nil, err
		}
	} else if existing, _ := uc.userRepo.GetRoleAssignment(user.ID, in.TenantID); existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	ra := &entity.RoleAssignment{
		UserID:     user.ID,
		TenantID:   in.TenantID,
		Role:       role,
		BranchID:   in.BranchID,
		IsDirector: in.IsDirector,
		CreatedAt:  now,
	}
	if err := uc.userRepo.CreateRoleAssignment(ra); err != nil {
		return nil, err
	}
	return toUserResponse(user, ra), nil
}

// Login verifica e-mail/senha, confere o papel no tenant informado e emite o
// JWT com user_id, tenant_id e role.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	ra, err := uc.userRepo.GetRoleAssignment(user.ID, in.TenantID)
	if err != nil {
		return nil, err
	}
	if ra == nil {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, in.TenantID, ra.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user, ra),
	}, nil
}

func toUserResponse(u *entity.User, ra *entity.RoleAssignment) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		TenantID:  ra.TenantID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      ra.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}
