package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/spec-kit/ticket-desk/internal/domain"
	"github.com/spec-kit/ticket-desk/pkg/errorutil"
)

// TicketRepository encapsulates ticket and reply persistence. Field-level
// validation and authorization are the caller's responsibility; updates here
// are unconditional by primary key.
type TicketRepository interface {
	List(ctx context.Context) ([]domain.Ticket, error)
	GetByID(ctx context.Context, id int64) (domain.Ticket, error)
	Create(ctx context.Context, ownerID int64, title string, category domain.TicketCategory, initialText string) error
	SetState(ctx context.Context, id int64, state domain.TicketState) error
	SetCategory(ctx context.Context, id int64, category domain.TicketCategory) error
	AddReply(ctx context.Context, ticketID, authorID int64, text string) error
}

type ticketRepository struct {
	db *sqlx.DB
}

// NewTicketRepository instantiates the repository.
func NewTicketRepository(db *sqlx.DB) TicketRepository {
	return &ticketRepository{db: db}
}

type ticketRow struct {
	ID          int64     `db:"ticket_id"`
	OwnerID     int64     `db:"owner_id"`
	OwnerName   string    `db:"owner_name"`
	Title       string    `db:"title"`
	Category    string    `db:"category"`
	InitialText string    `db:"initial_text"`
	State       string    `db:"state"`
	SubmittedAt time.Time `db:"submitted_at"`
}

func (r ticketRow) toDomain() domain.Ticket {
	return domain.Ticket{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		OwnerName:   r.OwnerName,
		Title:       r.Title,
		Category:    domain.TicketCategory(r.Category),
		InitialText: r.InitialText,
		State:       domain.TicketState(r.State),
		SubmittedAt: r.SubmittedAt,
	}
}

type replyRow struct {
	ID          int64     `db:"text_block_id"`
	TicketID    int64     `db:"ticket_id"`
	AuthorID    int64     `db:"author_id"`
	AuthorName  string    `db:"author_name"`
	Text        string    `db:"text"`
	SubmittedAt time.Time `db:"submitted_at"`
}

const ticketSelect = `
    SELECT tickets.ticket_id,
           tickets.owner AS owner_id,
           users.name AS owner_name,
           tickets.title,
           tickets.category,
           tickets.initial_text,
           tickets.state,
           tickets.submitted_at
    FROM tickets
    JOIN users ON tickets.owner = users.user_id`

// List returns all tickets newest first, each with its ordered reply thread
// and author names resolved. Replies are fetched in one query and grouped in
// memory rather than per ticket.
func (r *ticketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	var ticketRows []ticketRow
	if err := r.db.SelectContext(ctx, &ticketRows, ticketSelect+` ORDER BY tickets.submitted_at DESC`); err != nil {
		return nil, errorutil.NewStorage(err)
	}

	var replyRows []replyRow
	err := r.db.SelectContext(ctx, &replyRows, `
        SELECT text_blocks.text_block_id,
               text_blocks.ticket_id,
               text_blocks.author AS author_id,
               users.name AS author_name,
               text_blocks.text,
               text_blocks.submitted_at
        FROM text_blocks
        JOIN users ON text_blocks.author = users.user_id
        ORDER BY text_blocks.submitted_at ASC, text_blocks.text_block_id ASC`)
	if err != nil {
		return nil, errorutil.NewStorage(err)
	}

	repliesByTicket := make(map[int64][]domain.Reply, len(ticketRows))
	for _, row := range replyRows {
		repliesByTicket[row.TicketID] = append(repliesByTicket[row.TicketID], domain.Reply{
			ID:          row.ID,
			TicketID:    row.TicketID,
			AuthorID:    row.AuthorID,
			AuthorName:  row.AuthorName,
			Text:        row.Text,
			SubmittedAt: row.SubmittedAt,
		})
	}

	tickets := make([]domain.Ticket, 0, len(ticketRows))
	for _, row := range ticketRows {
		ticket := row.toDomain()
		ticket.Replies = repliesByTicket[row.ID]
		tickets = append(tickets, ticket)
	}
	return tickets, nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (domain.Ticket, error) {
	var row ticketRow
	err := r.db.GetContext(ctx, &row, ticketSelect+` WHERE tickets.ticket_id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Ticket{}, errorutil.NewNotFound("ticket")
	}
	if err != nil {
		return domain.Ticket{}, errorutil.NewStorage(err)
	}
	return row.toDomain(), nil
}

func (r *ticketRepository) Create(ctx context.Context, ownerID int64, title string, category domain.TicketCategory, initialText string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tickets (owner, category, title, initial_text, state, submitted_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		ownerID, category, title, initialText, domain.TicketStateOpen, time.Now().UTC())
	if err != nil {
		return errorutil.NewStorage(err)
	}
	return nil
}

func (r *ticketRepository) SetState(ctx context.Context, id int64, state domain.TicketState) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE tickets SET state = ? WHERE ticket_id = ?`, state, id); err != nil {
		return errorutil.NewStorage(err)
	}
	return nil
}

func (r *ticketRepository) SetCategory(ctx context.Context, id int64, category domain.TicketCategory) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE tickets SET category = ? WHERE ticket_id = ?`, category, id); err != nil {
		return errorutil.NewStorage(err)
	}
	return nil
}

func (r *ticketRepository) AddReply(ctx context.Context, ticketID, authorID int64, text string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO text_blocks (ticket_id, author, text, submitted_at) VALUES (?, ?, ?, ?)`,
		ticketID, authorID, text, time.Now().UTC())
	if err != nil {
		return errorutil.NewStorage(err)
	}
	return nil
}
