package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/wavrons/stargate/models"
)

const vaultEntriesTable = "vault_entries"

var vaultEntryColumns = []string{
	"id",
	"scope_id",
	"path",
	"file_name",
	"content_type",
	"size_bytes",
	"created_at",
}

func buildInsertVaultEntryQuery(b sq.StatementBuilderType, entry models.VaultEntry) (string, []any, error) {
	return b.Insert(vaultEntriesTable).
		Columns(vaultEntryColumns...).
		Values(entry.ID, entry.ScopeID, entry.Path, entry.FileName, entry.ContentType, entry.SizeBytes, entry.CreatedAt).
		ToSql()
}

func buildSelectVaultEntryQuery(b sq.StatementBuilderType, scopeID, path string) (string, []any, error) {
	return b.Select(vaultEntryColumns...).
		From(vaultEntriesTable).
		Where(sq.Eq{"scope_id": scopeID, "path": path}).
		ToSql()
}

func buildListVaultEntriesQuery(b sq.StatementBuilderType, scopeID string) (string, []any, error) {
	return b.Select(vaultEntryColumns...).
		From(vaultEntriesTable).
		Where(sq.Eq{"scope_id": scopeID}).
		OrderBy("created_at DESC", "path").
		ToSql()
}

func buildDeleteVaultEntryQuery(b sq.StatementBuilderType, scopeID, path string) (string, []any, error) {
	return b.Delete(vaultEntriesTable).
		Where(sq.Eq{"scope_id": scopeID, "path": path}).
		ToSql()
}

func buildScopeUsageQuery(b sq.StatementBuilderType, scopeID string) (string, []any, error) {
	return b.Select("COALESCE(SUM(size_bytes), 0)").
		From(vaultEntriesTable).
		Where(sq.Eq{"scope_id": scopeID}).
		ToSql()
}
