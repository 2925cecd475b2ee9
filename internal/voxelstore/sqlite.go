package voxelstore

import (
	"database/sql"
	"encoding/binary"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sarchlab/redpiler/internal/cell"
)

// SQLite is a cell.Storage backed by a single SQLite database, the concrete
// reference/test storage named in SPEC_FULL.md's DOMAIN STACK section:
// three tables, `cells(x,y,z,state_id)`, `block_entities(x,y,z,payload)`
// and `pending_ticks(x,y,z,delay,priority)`, state ids round-tripped
// through cell.EncodeCell/DecodeCell.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if necessary) a SQLite-backed store at path.
// Use ":memory:" for a throwaway database.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("voxelstore: open %s: %w", path, err)
	}
	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS cells (
			x INTEGER NOT NULL, y INTEGER NOT NULL, z INTEGER NOT NULL,
			state_id INTEGER NOT NULL,
			PRIMARY KEY (x, y, z)
		);
		CREATE TABLE IF NOT EXISTS block_entities (
			x INTEGER NOT NULL, y INTEGER NOT NULL, z INTEGER NOT NULL,
			payload BLOB NOT NULL,
			PRIMARY KEY (x, y, z)
		);
		CREATE TABLE IF NOT EXISTS pending_ticks (
			x INTEGER NOT NULL, y INTEGER NOT NULL, z INTEGER NOT NULL,
			delay INTEGER NOT NULL, priority INTEGER NOT NULL,
			PRIMARY KEY (x, y, z)
		);
	`)
	if err != nil {
		return fmt.Errorf("voxelstore: migrate: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) Get(pos cell.Pos) (cell.Cell, bool) {
	var stateID int
	err := s.db.QueryRow(`SELECT state_id FROM cells WHERE x=? AND y=? AND z=?`, pos.X, pos.Y, pos.Z).Scan(&stateID)
	if err != nil {
		return cell.Cell{}, false
	}
	c, err := cell.DecodeCell(stateID)
	if err != nil {
		return cell.Cell{}, false
	}
	return c, true
}

func (s *SQLite) Set(pos cell.Pos, c cell.Cell) {
	stateID := cell.EncodeCell(c)
	s.db.Exec(
		`INSERT INTO cells (x, y, z, state_id) VALUES (?, ?, ?, ?)
		 ON CONFLICT(x, y, z) DO UPDATE SET state_id = excluded.state_id`,
		pos.X, pos.Y, pos.Z, stateID,
	)
}

func (s *SQLite) GetBlockEntity(pos cell.Pos) (cell.BlockEntity, bool) {
	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM block_entities WHERE x=? AND y=? AND z=?`, pos.X, pos.Y, pos.Z).Scan(&payload)
	if err != nil {
		return nil, false
	}
	be, err := decodeBlockEntity(payload)
	if err != nil {
		return nil, false
	}
	return be, true
}

func (s *SQLite) SetBlockEntity(pos cell.Pos, be cell.BlockEntity) {
	payload := encodeBlockEntity(be)
	s.db.Exec(
		`INSERT INTO block_entities (x, y, z, payload) VALUES (?, ?, ?, ?)
		 ON CONFLICT(x, y, z) DO UPDATE SET payload = excluded.payload`,
		pos.X, pos.Y, pos.Z, payload,
	)
}

func (s *SQLite) DeleteBlockEntity(pos cell.Pos) {
	s.db.Exec(`DELETE FROM block_entities WHERE x=? AND y=? AND z=?`, pos.X, pos.Y, pos.Z)
}

func (s *SQLite) ScheduleTick(pos cell.Pos, delay uint8, priority cell.TickPriority) {
	s.db.Exec(
		`INSERT INTO pending_ticks (x, y, z, delay, priority) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(x, y, z) DO UPDATE SET delay = excluded.delay, priority = excluded.priority`,
		pos.X, pos.Y, pos.Z, delay, int(priority),
	)
}

func (s *SQLite) PendingTickAt(pos cell.Pos) (cell.PendingTick, bool) {
	var delay int
	var priority int
	err := s.db.QueryRow(`SELECT delay, priority FROM pending_ticks WHERE x=? AND y=? AND z=?`, pos.X, pos.Y, pos.Z).Scan(&delay, &priority)
	if err != nil {
		return cell.PendingTick{}, false
	}
	return cell.PendingTick{Pos: pos, Delay: uint8(delay), Priority: cell.TickPriority(priority)}, true
}

func (s *SQLite) CancelTick(pos cell.Pos) {
	s.db.Exec(`DELETE FROM pending_ticks WHERE x=? AND y=? AND z=?`, pos.X, pos.Y, pos.Z)
}

// AllPendingTicks returns every row in pending_ticks, for seeding a
// compiler.Driver's Compile call.
func (s *SQLite) AllPendingTicks() ([]cell.PendingTick, error) {
	rows, err := s.db.Query(`SELECT x, y, z, delay, priority FROM pending_ticks`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []cell.PendingTick
	for rows.Next() {
		var x, y, z, delay, priority int
		if err := rows.Scan(&x, &y, &z, &delay, &priority); err != nil {
			return nil, err
		}
		out = append(out, cell.PendingTick{
			Pos:      cell.Pos{X: int32(x), Y: int32(y), Z: int32(z)},
			Delay:    uint8(delay),
			Priority: cell.TickPriority(priority),
		})
	}
	return out, rows.Err()
}

// block entity payload tags.
const (
	entityTagComparator byte = iota
	entityTagContainer
)

func encodeBlockEntity(be cell.BlockEntity) []byte {
	switch v := be.(type) {
	case cell.ComparatorEntity:
		return []byte{entityTagComparator, v.OutputStrength}
	case cell.ContainerEntity:
		buf := make([]byte, 1+1+4+4+1)
		buf[0] = entityTagContainer
		buf[1] = byte(v.Kind)
		binary.LittleEndian.PutUint32(buf[2:6], uint32(v.FilledSlots))
		binary.LittleEndian.PutUint32(buf[6:10], uint32(v.TotalSlots))
		buf[10] = v.ComparatorOverride
		return buf
	default:
		return nil
	}
}

func decodeBlockEntity(payload []byte) (cell.BlockEntity, error) {
	if len(payload) == 0 {
		return nil, cell.ErrMalformedCell
	}
	switch payload[0] {
	case entityTagComparator:
		if len(payload) < 2 {
			return nil, cell.ErrMalformedCell
		}
		return cell.ComparatorEntity{OutputStrength: payload[1]}, nil
	case entityTagContainer:
		if len(payload) < 11 {
			return nil, cell.ErrMalformedCell
		}
		return cell.ContainerEntity{
			Kind:               cell.ContainerKind(payload[1]),
			FilledSlots:        int(binary.LittleEndian.Uint32(payload[2:6])),
			TotalSlots:         int(binary.LittleEndian.Uint32(payload[6:10])),
			ComparatorOverride: payload[10],
		}, nil
	default:
		return nil, cell.ErrMalformedCell
	}
}

var _ cell.Storage = (*SQLite)(nil)
