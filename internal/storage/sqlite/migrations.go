package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// Dates are stored as Unix seconds; nullable dates use NULL.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL DEFAULT '',
    role TEXT NOT NULL,
    student_id TEXT,
    department TEXT NOT NULL DEFAULT '',
    join_date INTEGER NOT NULL,
    meetings_attended INTEGER NOT NULL DEFAULT 0,
    tasks_completed INTEGER NOT NULL DEFAULT 0,
    rating REAL NOT NULL DEFAULT 0,
    streak INTEGER NOT NULL DEFAULT 0,
    points INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_student_id ON users(student_id) WHERE student_id IS NOT NULL;

CREATE TABLE IF NOT EXISTS achievements (
    user_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    title TEXT NOT NULL,
    PRIMARY KEY (user_id, position),
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS meetings (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    type TEXT NOT NULL,
    date INTEGER NOT NULL,
    start_time TEXT NOT NULL DEFAULT '',
    end_time TEXT NOT NULL DEFAULT '',
    location TEXT NOT NULL DEFAULT '',
    chairperson_id TEXT NOT NULL DEFAULT '',
    minutes_taker_id TEXT NOT NULL DEFAULT '',
    objective TEXT NOT NULL DEFAULT '',
    summary TEXT NOT NULL DEFAULT '',
    next_date INTEGER,
    next_time TEXT,
    next_location TEXT,
    next_agenda TEXT,
    status TEXT NOT NULL,
    created_by TEXT NOT NULL DEFAULT '',
    archived INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS agenda_items (
    meeting_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    order_index INTEGER NOT NULL DEFAULT 0,
    title TEXT NOT NULL,
    presenter TEXT NOT NULL DEFAULT '',
    duration_minutes INTEGER NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL,
    PRIMARY KEY (meeting_id, position),
    FOREIGN KEY (meeting_id) REFERENCES meetings(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS attendees (
    meeting_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    user_id TEXT NOT NULL,
    status TEXT NOT NULL,
    arrival_time INTEGER,
    notes TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (meeting_id, position),
    FOREIGN KEY (meeting_id) REFERENCES meetings(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS decisions (
    meeting_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    text TEXT NOT NULL,
    PRIMARY KEY (meeting_id, position),
    FOREIGN KEY (meeting_id) REFERENCES meetings(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS action_items (
    meeting_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    task TEXT NOT NULL,
    assignee_id TEXT NOT NULL DEFAULT '',
    deadline INTEGER,
    priority TEXT NOT NULL,
    status TEXT NOT NULL,
    completed_at INTEGER,
    PRIMARY KEY (meeting_id, position),
    FOREIGN KEY (meeting_id) REFERENCES meetings(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_meetings_date ON meetings(date);
CREATE INDEX IF NOT EXISTS idx_attendees_user_id ON attendees(user_id);
CREATE INDEX IF NOT EXISTS idx_action_items_assignee_id ON action_items(assignee_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
