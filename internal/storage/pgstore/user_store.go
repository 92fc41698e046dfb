package pgstore

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fsdevblog/groph-vending/internal/domain"
)

// DBTX минимальный контракт выполнения запросов. Ему удовлетворяют и *pgxpool.Pool, и pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type UserStore struct {
	conn DBTX
}

func NewUserStore(conn DBTX) *UserStore {
	return &UserStore{conn: conn}
}

const userColumns = `id, username, password, deposit, roles`

// Save сохраняет юзера. Запись с тем же id перезаписывается целиком.
func (s *UserStore) Save(ctx context.Context, user domain.User) (*domain.User, error) {
	row := s.conn.QueryRow(ctx, `
		INSERT INTO users (id, username, password, deposit, roles)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET username = excluded.username,
		    password = excluded.password,
		    deposit  = excluded.deposit,
		    roles    = excluded.roles
		RETURNING `+userColumns,
		user.ID, user.Username, user.Password, user.Deposit, rolesToStrings(user.Roles),
	)
	saved, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "saving user %s", user.ID)
	}
	return saved, nil
}

func (s *UserStore) Update(ctx context.Context, user domain.User) (bool, error) {
	tag, err := s.conn.Exec(ctx, `
		UPDATE users
		SET username = $2, password = $3, deposit = $4, roles = $5
		WHERE id = $1`,
		user.ID, user.Username, user.Password, user.Deposit, rolesToStrings(user.Roles),
	)
	if err != nil {
		return false, convertErr(err, "updating user %s", user.ID)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *UserStore) Delete(ctx context.Context, user domain.User) (bool, error) {
	tag, err := s.conn.Exec(ctx, `DELETE FROM users WHERE id = $1`, user.ID)
	if err != nil {
		return false, convertErr(err, "deleting user %s", user.ID)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	row := s.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by id %s", id)
	}
	return user, nil
}

// FindByName ищет юзера по юзернейму.
func (s *UserStore) FindByName(ctx context.Context, name string) (*domain.User, error) {
	row := s.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, name)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by username %s", name)
	}
	return user, nil
}

func (s *UserStore) FindAll(ctx context.Context) ([]domain.User, error) {
	rows, err := s.conn.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY username`)
	if err != nil {
		return nil, convertErr(err, "finding all users")
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning user row")
		}
		users = append(users, *user)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "iterating user rows")
	}
	return users, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var roles []string
	if err := row.Scan(&user.ID, &user.Username, &user.Password, &user.Deposit, &roles); err != nil {
		return nil, err //nolint:wrapcheck
	}
	user.Roles = stringsToRoles(roles)
	return &user, nil
}

func rolesToStrings(roles []domain.Role) []string {
	res := make([]string, len(roles))
	for i, role := range roles {
		res[i] = string(role)
	}
	return res
}

func stringsToRoles(roles []string) []domain.Role {
	// инвариант домена: Roles никогда не nil.
	res := make([]domain.Role, len(roles))
	for i, role := range roles {
		res[i] = domain.Role(role)
	}
	return res
}
