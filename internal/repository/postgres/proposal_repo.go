package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"communityhub/internal/domain"
)

const proposalColumns = `id, full_name, email, phone, title, description, duration::text, status, linkedin, github, twitter, created_at`

// notifyTimeout bounds the background notification after a submission.
const notifyTimeout = 10 * time.Second

type proposalRepository struct {
	DB       *sql.DB
	notifier domain.ProposalNotifier
	logger   *slog.Logger
}

// NewProposalRepository returns a domain.ProposalRepository implemented with Postgres.
// When notifier is non-nil every successful submission is announced in the background;
// notification failures are logged and never reach the submitter.
func NewProposalRepository(db *sql.DB, notifier domain.ProposalNotifier, logger *slog.Logger) domain.ProposalRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &proposalRepository{DB: db, notifier: notifier, logger: logger}
}

func scanProposal(row rowScanner) (*domain.TalkProposal, error) {
	p := &domain.TalkProposal{}
	var phone, description, linkedin, github, twitter sql.NullString
	var duration, status string
	if err := row.Scan(&p.ID, &p.FullName, &p.Email, &phone, &p.Title, &description, &duration, &status, &linkedin, &github, &twitter, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Phone = phone.String
	p.Description = description.String
	p.Duration = domain.ProposalDuration(duration)
	p.Status = domain.ProposalStatus(status)
	p.LinkedIn = linkedin.String
	p.GitHub = github.String
	p.Twitter = twitter.String
	return p, nil
}

func (r *proposalRepository) SubmitProposal(ctx context.Context, dto domain.CreateProposalDTO) (*domain.TalkProposal, error) {
	query := `
		INSERT INTO talk_proposals (full_name, email, phone, title, description, duration, status, linkedin, github, twitter)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + proposalColumns
	p, err := scanProposal(r.DB.QueryRowContext(ctx, query,
		dto.FullName, dto.Email, nullString(dto.Phone), dto.Title, nullString(dto.Description), string(dto.Duration),
		domain.ProposalStatusProposed, nullString(dto.LinkedIn), nullString(dto.GitHub), nullString(dto.Twitter),
	))
	if err != nil {
		return nil, err
	}
	if r.notifier != nil {
		go r.notify(context.WithoutCancel(ctx), p)
	}
	return p, nil
}

func (r *proposalRepository) notify(ctx context.Context, p *domain.TalkProposal) {
	ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()
	if err := r.notifier.NotifyNewProposal(ctx, p); err != nil {
		r.logger.Error("failed to send new proposal notification", "proposal_id", p.ID, "err", err)
		return
	}
	r.logger.Info("new proposal notification sent", "proposal_id", p.ID)
}

func (r *proposalRepository) GetProposals(ctx context.Context) ([]*domain.TalkProposal, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+proposalColumns+` FROM talk_proposals ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	proposals := make([]*domain.TalkProposal, 0)
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, p)
	}
	return proposals, rows.Err()
}

func (r *proposalRepository) UpdateProposalStatus(ctx context.Context, id string, status domain.ProposalStatus) error {
	if !status.Valid() {
		return fmt.Errorf("proposal status %q: %w", status, domain.ErrInvalidInput)
	}
	result, err := r.DB.ExecContext(ctx, `UPDATE talk_proposals SET status = $1 WHERE id::text = $2`, status, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("proposal %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
