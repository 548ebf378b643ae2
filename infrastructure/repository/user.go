package repository

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/cfo-helper-api/infrastructure/database/postgres"
	"github.com/vfg2006/cfo-helper-api/internal/domain"
)

const usersTable = "users"

type UserRepository interface {
	GetByID(userID string) (*domain.UserProfile, error)
	Create(user *domain.UserProfile) (*domain.UserProfile, error)
	Update(user *domain.UserProfile) error
}

type userRepository struct {
	conn *postgres.Connection
}

func NewUserRepository(conn *postgres.Connection) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

// GetByID busca o perfil pelo id opaco do provedor de identidade.
// Retorna nil sem erro quando o perfil ainda não existe.
func (r *userRepository) GetByID(userID string) (*domain.UserProfile, error) {
	queryBuilder := squirrel.
		Select("id", "email", "full_name", "company_name", "industry", "organization_type", "team_size", "created_at", "updated_at").
		From(usersTable).
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	userSQL, userArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	var user domain.UserProfile
	err = r.conn.QueryRow(userSQL, userArgs...).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.CompanyName,
		&user.Industry,
		&user.OrganizationType,
		&user.TeamSize,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) Create(user *domain.UserProfile) (*domain.UserProfile, error) {
	queryBuilder := squirrel.
		Insert(usersTable).
		Columns("id", "email", "full_name", "company_name", "industry", "organization_type", "team_size").
		Values(user.ID, user.Email, user.FullName, user.CompanyName, user.Industry, user.OrganizationType, user.TeamSize).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	userSQL, userArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.conn.QueryRow(userSQL, userArgs...).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) Update(user *domain.UserProfile) error {
	queryBuilder := squirrel.
		Update(usersTable).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": user.ID})

	if user.Email != "" {
		queryBuilder = queryBuilder.Set("email", user.Email)
	}

	if user.FullName != nil {
		queryBuilder = queryBuilder.Set("full_name", user.FullName)
	}

	if user.CompanyName != nil {
		queryBuilder = queryBuilder.Set("company_name", user.CompanyName)
	}

	if user.Industry != nil {
		queryBuilder = queryBuilder.Set("industry", user.Industry)
	}

	if user.OrganizationType != nil {
		queryBuilder = queryBuilder.Set("organization_type", user.OrganizationType)
	}

	if user.TeamSize != nil {
		queryBuilder = queryBuilder.Set("team_size", user.TeamSize)
	}

	userSQL, userArgs, err := queryBuilder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(userSQL, userArgs...)
	if err != nil {
		return err
	}

	return nil
}
