package services

import (
	"context"
	"fmt"
	"strings"

	"restdb/internal/models"
	"restdb/internal/repositories"
	"restdb/internal/utils"
)

const (
	maxJunctionTableColumns = 6
	minJunctionTableFKs     = 2
)

// DiagramService renders the reflected schema as a Mermaid ER diagram.
type DiagramService struct {
	schemaRepo *repositories.SchemaRepository
	schema     string
}

func NewDiagramService(schemaRepo *repositories.SchemaRepository, schema string) *DiagramService {
	return &DiagramService{
		schemaRepo: schemaRepo,
		schema:     schema,
	}
}

// Render reflects every table and produces the erDiagram text.
func (s *DiagramService) Render(ctx context.Context) (string, error) {
	tables, err := s.parseTables(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to parse tables: %w", err)
	}

	relationships, err := s.buildRelationships(ctx, tables)
	if err != nil {
		return "", fmt.Errorf("failed to build relationships: %w", err)
	}

	return generateMermaid(tables, relationships), nil
}

func (s *DiagramService) parseTables(ctx context.Context) ([]models.Table, error) {
	tableNames, err := s.schemaRepo.GetTables(ctx, s.schema)
	if err != nil {
		return nil, err
	}

	tables := make([]models.Table, 0, len(tableNames))

	for _, tableName := range tableNames {
		table := models.Table{Name: tableName}

		columns, err := s.schemaRepo.GetColumns(ctx, s.schema, tableName)
		if err != nil {
			return nil, fmt.Errorf("failed to get columns for %s: %w", tableName, err)
		}
		table.Columns = columns

		pks, err := s.schemaRepo.GetPrimaryKeys(ctx, s.schema, tableName)
		if err != nil {
			return nil, fmt.Errorf("failed to get primary keys for %s: %w", tableName, err)
		}
		table.PrimaryKeys = pks

		fks, err := s.schemaRepo.GetForeignKeys(ctx, s.schema, tableName)
		if err != nil {
			return nil, fmt.Errorf("failed to get foreign keys for %s: %w", tableName, err)
		}
		table.ForeignKeys = fks

		tables = append(tables, table)
	}

	return tables, nil
}

func (s *DiagramService) buildRelationships(ctx context.Context, tables []models.Table) ([]models.Relationship, error) {
	var relationships []models.Relationship
	junctionTables := detectJunctionTables(tables)

	// Collect the foreign key columns that need a unique-constraint check
	// (junction tables are handled as many-to-many instead).
	var tableColumns []repositories.TableColumn
	for _, table := range tables {
		if !junctionTables[table.Name] {
			for _, fk := range table.ForeignKeys {
				tableColumns = append(tableColumns, repositories.TableColumn{
					Table:  table.Name,
					Column: fk.FromColumn,
				})
			}
		}
	}

	uniqueMap, err := s.schemaRepo.GetUniqueConstraintsBatch(ctx, s.schema, tableColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to get unique constraints: %w", err)
	}

	for _, table := range tables {
		if junctionTables[table.Name] {
			if len(table.ForeignKeys) >= minJunctionTableFKs {
				for i := 0; i < len(table.ForeignKeys); i++ {
					for j := i + 1; j < len(table.ForeignKeys); j++ {
						relationships = append(relationships, models.Relationship{
							FromTable: table.ForeignKeys[i].ToTable,
							ToTable:   table.ForeignKeys[j].ToTable,
							Type:      "}o--o{",
						})
					}
				}
			}
			continue
		}

		for _, fk := range table.ForeignKeys {
			key := fmt.Sprintf("%s:%s", table.Name, fk.FromColumn)

			relType := "||--o{" // one-to-many
			if uniqueMap[key] {
				relType = "||--||" // one-to-one
			}

			relationships = append(relationships, models.Relationship{
				FromTable: table.Name,
				ToTable:   fk.ToTable,
				Type:      relType,
			})
		}
	}

	return relationships, nil
}

// detectJunctionTables finds small tables whose primary key is made of at
// least two foreign key columns.
func detectJunctionTables(tables []models.Table) map[string]bool {
	junctionTables := make(map[string]bool)
	for _, table := range tables {
		if len(table.ForeignKeys) < minJunctionTableFKs ||
			len(table.PrimaryKeys) < minJunctionTableFKs ||
			len(table.Columns) > maxJunctionTableColumns {
			continue
		}

		allFKsInPK := true
		for _, fk := range table.ForeignKeys {
			if !utils.Contains(table.PrimaryKeys, fk.FromColumn) {
				allFKsInPK = false
				break
			}
		}

		fkCountInPK := 0
		for _, pk := range table.PrimaryKeys {
			for _, fk := range table.ForeignKeys {
				if pk == fk.FromColumn {
					fkCountInPK++
					break
				}
			}
		}

		if allFKsInPK && fkCountInPK >= minJunctionTableFKs {
			junctionTables[table.Name] = true
		}
	}
	return junctionTables
}

func generateMermaid(tables []models.Table, relationships []models.Relationship) string {
	var sb strings.Builder

	sb.WriteString("erDiagram\n")

	if len(relationships) > 0 {
		seen := make(map[string]bool)
		for _, rel := range relationships {
			key := fmt.Sprintf("%s:%s:%s", rel.FromTable, rel.Type, rel.ToTable)
			if seen[key] {
				continue
			}
			seen[key] = true

			// Mermaid requires a label on every edge; an empty one hides it.
			sb.WriteString(fmt.Sprintf("    %s %s %s : \"\"\n",
				strings.ToUpper(rel.FromTable),
				rel.Type,
				strings.ToUpper(rel.ToTable)))
		}
		sb.WriteString("\n")
	}

	for _, table := range tables {
		sb.WriteString(fmt.Sprintf("    %s {\n", strings.ToUpper(table.Name)))

		for _, col := range table.Columns {
			annotations := ""
			if utils.Contains(table.PrimaryKeys, col.Name) {
				annotations = " PK"
			}
			if isForeignKey(table.ForeignKeys, col.Name) {
				annotations += " FK"
			}

			sb.WriteString(fmt.Sprintf("        %s %s%s\n",
				simplifyDataType(col.DataType),
				col.Name,
				annotations))
		}

		sb.WriteString("    }\n\n")
	}

	return sb.String()
}

func simplifyDataType(dataType string) string {
	dt := strings.ToLower(dataType)

	switch {
	case dt == "integer":
		return "int"
	case dt == "bigint":
		return "bigint"
	case dt == "smallint":
		return "smallint"
	case strings.HasPrefix(dt, "character varying"):
		return "varchar"
	case strings.HasPrefix(dt, "character"):
		return "char"
	case dt == "text":
		return "text"
	case strings.HasPrefix(dt, "timestamp without time zone"):
		return "timestamp"
	case strings.HasPrefix(dt, "timestamp with time zone"):
		return "timestamptz"
	case strings.HasPrefix(dt, "time without time zone"):
		return "time"
	case dt == "date":
		return "date"
	case dt == "boolean":
		return "boolean"
	case strings.HasPrefix(dt, "numeric"):
		return "numeric"
	case strings.HasPrefix(dt, "decimal"):
		return "decimal"
	case dt == "real":
		return "real"
	case dt == "double precision":
		return "double"
	case dt == "json":
		return "json"
	case dt == "jsonb":
		return "jsonb"
	case dt == "uuid":
		return "uuid"
	case dt == "bytea":
		return "bytea"
	case strings.HasPrefix(dt, "array"):
		return "array"
	default:
		return dataType
	}
}

func isForeignKey(fks []models.ForeignKey, colName string) bool {
	for _, fk := range fks {
		if fk.FromColumn == colName {
			return true
		}
	}
	return false
}
