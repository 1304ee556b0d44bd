package gateway

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	// Registers the "postgres" driver with database/sql.
	_ "github.com/lib/pq"

	"github.com/WorksphereAI/worksphereai-sub002/pkg/models"
)

// Open connects to the Postgres store at the given URL and verifies the
// connection. The returned pool is owned by the caller and must be closed on
// shutdown; individual queries acquire and release pooled connections.
func Open(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return db, nil
}

// postgresGateway implements Gateway on a database/sql pool.
type postgresGateway struct {
	db *sql.DB
}

// NewPostgres creates a Gateway backed by the given connection pool.
func NewPostgres(db *sql.DB) Gateway {
	return &postgresGateway{db: db}
}

func (g *postgresGateway) UserByID(ctx context.Context, userID string) (*models.User, error) {
	const q = `
		SELECT id, email, full_name, organization_id, COALESCE(department_id, ''), role
		FROM users
		WHERE id = $1`

	var u models.User
	err := g.db.QueryRowContext(ctx, q, userID).Scan(
		&u.ID, &u.Email, &u.FullName, &u.OrganizationID, &u.DepartmentID, &u.Role,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user %s: %w", userID, err)
	}
	return &u, nil
}

func (g *postgresGateway) PendingTasks(ctx context.Context, assigneeID string, limit int) ([]models.Task, error) {
	const q = `
		SELECT id, title, priority, status, due_date, assignee_id, assigner_id, organization_id, created_at
		FROM tasks
		WHERE assignee_id = $1 AND status <> 'completed'
		ORDER BY due_date ASC NULLS LAST
		LIMIT $2`

	rows, err := g.db.QueryContext(ctx, q, assigneeID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying pending tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		var due sql.NullTime
		if err := rows.Scan(&t.ID, &t.Title, &t.Priority, &t.Status, &due,
			&t.AssigneeID, &t.AssignerID, &t.OrganizationID, &t.Created); err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		if due.Valid {
			d := due.Time
			t.DueDate = &d
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (g *postgresGateway) UnreadMessages(ctx context.Context, recipientID string, limit int) ([]models.Message, error) {
	const q = `
		SELECT m.id, m.sender_id, u.full_name, m.recipient_id, COALESCE(m.channel_id, ''), m.content, m.read, m.created_at
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.recipient_id = $1 AND m.read = FALSE
		ORDER BY m.created_at DESC
		LIMIT $2`

	rows, err := g.db.QueryContext(ctx, q, recipientID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying unread messages: %w", err)
	}
	defer rows.Close()

	var msgs []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.SenderName, &m.RecipientID,
			&m.ChannelID, &m.Content, &m.Read, &m.Created); err != nil {
			return nil, fmt.Errorf("scanning message row: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (g *postgresGateway) RecentFiles(ctx context.Context, organizationID string, limit int) ([]models.File, error) {
	const q = `
		SELECT f.id, f.name, f.size_bytes, f.uploader_id, u.full_name, f.organization_id, f.created_at
		FROM files f
		JOIN users u ON u.id = f.uploader_id
		WHERE f.organization_id = $1
		ORDER BY f.created_at DESC
		LIMIT $2`

	rows, err := g.db.QueryContext(ctx, q, organizationID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent files: %w", err)
	}
	defer rows.Close()

	var files []models.File
	for rows.Next() {
		var f models.File
		if err := rows.Scan(&f.ID, &f.Name, &f.SizeBytes, &f.UploaderID,
			&f.UploaderName, &f.OrganizationID, &f.Created); err != nil {
			return nil, fmt.Errorf("scanning file row: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func (g *postgresGateway) PendingApprovals(ctx context.Context, userID string, limit int) ([]models.Approval, error) {
	const q = `
		SELECT a.id, a.type, a.requester_id, u.full_name, a.approver_id, a.status, a.priority, a.created_at
		FROM approvals a
		JOIN users u ON u.id = a.requester_id
		WHERE (a.requester_id = $1 OR a.approver_id = $1) AND a.status = 'pending'
		ORDER BY a.created_at DESC
		LIMIT $2`

	rows, err := g.db.QueryContext(ctx, q, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying pending approvals: %w", err)
	}
	defer rows.Close()

	var approvals []models.Approval
	for rows.Next() {
		var a models.Approval
		if err := rows.Scan(&a.ID, &a.Type, &a.RequesterID, &a.RequesterName,
			&a.ApproverID, &a.Status, &a.Priority, &a.Created); err != nil {
			return nil, fmt.Errorf("scanning approval row: %w", err)
		}
		approvals = append(approvals, a)
	}
	return approvals, rows.Err()
}

func (g *postgresGateway) CountPendingTasks(ctx context.Context, assigneeID string) (int, error) {
	const q = `SELECT COUNT(*) FROM tasks WHERE assignee_id = $1 AND status <> 'completed'`
	return g.count(ctx, q, assigneeID)
}

func (g *postgresGateway) CountUnreadMessages(ctx context.Context, recipientID string) (int, error) {
	const q = `SELECT COUNT(*) FROM messages WHERE recipient_id = $1 AND read = FALSE`
	return g.count(ctx, q, recipientID)
}

func (g *postgresGateway) CountPendingApprovals(ctx context.Context, userID string) (int, error) {
	const q = `SELECT COUNT(*) FROM approvals WHERE (requester_id = $1 OR approver_id = $1) AND status = 'pending'`
	return g.count(ctx, q, userID)
}

func (g *postgresGateway) CountTeamMembers(ctx context.Context, organizationID string) (int, error) {
	const q = `SELECT COUNT(*) FROM users WHERE organization_id = $1`
	return g.count(ctx, q, organizationID)
}

func (g *postgresGateway) count(ctx context.Context, query string, arg string) (int, error) {
	var n int
	if err := g.db.QueryRowContext(ctx, query, arg).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting rows: %w", err)
	}
	return n, nil
}
