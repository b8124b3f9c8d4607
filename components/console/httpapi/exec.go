package httpapi

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-waconsole/components/board"
	"github.com/goliatone/go-waconsole/components/console/commands"
	"github.com/goliatone/go-waconsole/components/console/queries"
	"github.com/goliatone/go-waconsole/components/records"
	"github.com/goliatone/go-waconsole/components/variations"
)

// Executor is the transport-facing surface of the console commands and
// queries. Router integrations depend on it instead of concrete command
// types.
type Executor interface {
	MoveCard(ctx context.Context, req board.MoveRequest) error
	SetQuota(ctx context.Context, input commands.SetQuotaInput) error
	ToggleFeature(ctx context.Context, input commands.ToggleFeatureInput) error
	UpdateRecord(ctx context.Context, input commands.UpdateRecordInput) error

	Analyze(ctx context.Context, template string) (variations.Analysis, error)
	Board(ctx context.Context, input queries.BoardInput) ([]board.Column, error)
	Table(ctx context.Context, input queries.TableInput) (records.TablePage, error)
	Calendar(ctx context.Context, input queries.CalendarInput) (records.Calendar, error)
}

// CommandExecutor implements Executor over the shared command and query
// instances.
type CommandExecutor struct {
	MoveCmd          gocommand.Commander[board.MoveRequest]
	SetQuotaCmd      gocommand.Commander[commands.SetQuotaInput]
	ToggleFeatureCmd gocommand.Commander[commands.ToggleFeatureInput]
	UpdateRecordCmd  gocommand.Commander[commands.UpdateRecordInput]

	AnalyzeQ  gocommand.Querier[string, variations.Analysis]
	BoardQ    gocommand.Querier[queries.BoardInput, []board.Column]
	TableQ    gocommand.Querier[queries.TableInput, records.TablePage]
	CalendarQ gocommand.Querier[queries.CalendarInput, records.Calendar]
}

var _ Executor = (*CommandExecutor)(nil)

var errNotConfigured = errors.New("httpapi: handler not configured")

func (e *CommandExecutor) MoveCard(ctx context.Context, req board.MoveRequest) error {
	if e.MoveCmd == nil {
		return errNotConfigured
	}
	return e.MoveCmd.Execute(ctx, req)
}

func (e *CommandExecutor) SetQuota(ctx context.Context, input commands.SetQuotaInput) error {
	if e.SetQuotaCmd == nil {
		return errNotConfigured
	}
	return e.SetQuotaCmd.Execute(ctx, input)
}

func (e *CommandExecutor) ToggleFeature(ctx context.Context, input commands.ToggleFeatureInput) error {
	if e.ToggleFeatureCmd == nil {
		return errNotConfigured
	}
	return e.ToggleFeatureCmd.Execute(ctx, input)
}

func (e *CommandExecutor) UpdateRecord(ctx context.Context, input commands.UpdateRecordInput) error {
	if e.UpdateRecordCmd == nil {
		return errNotConfigured
	}
	return e.UpdateRecordCmd.Execute(ctx, input)
}

func (e *CommandExecutor) Analyze(ctx context.Context, template string) (variations.Analysis, error) {
	if e.AnalyzeQ == nil {
		return variations.Analysis{}, errNotConfigured
	}
	return e.AnalyzeQ.Query(ctx, template)
}

func (e *CommandExecutor) Board(ctx context.Context, input queries.BoardInput) ([]board.Column, error) {
	if e.BoardQ == nil {
		return nil, errNotConfigured
	}
	return e.BoardQ.Query(ctx, input)
}

func (e *CommandExecutor) Table(ctx context.Context, input queries.TableInput) (records.TablePage, error) {
	if e.TableQ == nil {
		return records.TablePage{}, errNotConfigured
	}
	return e.TableQ.Query(ctx, input)
}

func (e *CommandExecutor) Calendar(ctx context.Context, input queries.CalendarInput) (records.Calendar, error) {
	if e.CalendarQ == nil {
		return records.Calendar{}, errNotConfigured
	}
	return e.CalendarQ.Query(ctx, input)
}
