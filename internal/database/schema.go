package database

// schema statements are formatted with the dialect's
// primary key (%[1]s), timestamp (%[2]s) and bigint (%[3]s) types.
var schema = []struct {
	name string
	ddl  string
}{
	{"users table", `
		CREATE TABLE IF NOT EXISTS users (
			id %[1]s,
			name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL UNIQUE,
			telegram_chat_id %[3]s NOT NULL DEFAULT 0,
			reminders_enabled BOOLEAN NOT NULL DEFAULT TRUE,
			reminder_hour INTEGER NOT NULL DEFAULT 9,
			created_at %[2]s NOT NULL,
			updated_at %[2]s NOT NULL
		)`},
	{"subjects table", `
		CREATE TABLE IF NOT EXISTS subjects (
			id %[1]s,
			user_id %[3]s NOT NULL REFERENCES users(id),
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			level TEXT NOT NULL DEFAULT '',
			color TEXT NOT NULL DEFAULT '',
			icon TEXT NOT NULL DEFAULT '',
			created_at %[2]s NOT NULL,
			updated_at %[2]s NOT NULL
		)`},
	{"topics table", `
		CREATE TABLE IF NOT EXISTS topics (
			id %[1]s,
			subject_id %[3]s NOT NULL REFERENCES subjects(id),
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			sort_order INTEGER NOT NULL DEFAULT 0,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			completed_at %[2]s,
			created_at %[2]s NOT NULL,
			updated_at %[2]s NOT NULL
		)`},
	{"revisions table", `
		CREATE TABLE IF NOT EXISTS revisions (
			id %[1]s,
			topic_id %[3]s NOT NULL REFERENCES topics(id),
			scheduled_for %[2]s NOT NULL,
			session_number INTEGER NOT NULL,
			interval_days INTEGER NOT NULL,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			completed_at %[2]s,
			notes TEXT NOT NULL DEFAULT '',
			created_at %[2]s NOT NULL,
			updated_at %[2]s NOT NULL
		)`},
	{"revisions index", `CREATE INDEX IF NOT EXISTS idx_revisions_topic_due ON revisions (topic_id, completed, scheduled_for)`},
	{"study_sessions table", `
		CREATE TABLE IF NOT EXISTS study_sessions (
			id %[1]s,
			user_id %[3]s NOT NULL REFERENCES users(id),
			date %[2]s NOT NULL,
			activities TEXT NOT NULL DEFAULT '[]',
			duration INTEGER NOT NULL DEFAULT 0,
			created_at %[2]s NOT NULL
		)`},
	{"study_sessions index", `CREATE INDEX IF NOT EXISTS idx_study_sessions_user_date ON study_sessions (user_id, date)`},
	{"sat_sessions table", `
		CREATE TABLE IF NOT EXISTS sat_sessions (
			id %[1]s,
			user_id %[3]s NOT NULL REFERENCES users(id),
			topic TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT 'other',
			youtube_url TEXT NOT NULL DEFAULT '',
			video_id TEXT NOT NULL DEFAULT '',
			video_timestamp INTEGER NOT NULL DEFAULT 0,
			duration INTEGER NOT NULL DEFAULT 0,
			notes TEXT NOT NULL DEFAULT '',
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			date %[2]s NOT NULL,
			created_at %[2]s NOT NULL,
			updated_at %[2]s NOT NULL
		)`},
	{"sat_sessions index", `CREATE INDEX IF NOT EXISTS idx_sat_sessions_user_date ON sat_sessions (user_id, date)`},
	{"learning_projects table", `
		CREATE TABLE IF NOT EXISTS learning_projects (
			id %[1]s,
			user_id %[3]s NOT NULL REFERENCES users(id),
			name TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT 'other',
			description TEXT NOT NULL DEFAULT '',
			total_units INTEGER NOT NULL DEFAULT 0,
			completed_units INTEGER NOT NULL DEFAULT 0,
			days_spent INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'in_progress',
			last_studied %[2]s,
			created_at %[2]s NOT NULL,
			updated_at %[2]s NOT NULL
		)`},
	{"learning_sessions table", `
		CREATE TABLE IF NOT EXISTS learning_sessions (
			id %[1]s,
			project_id %[3]s NOT NULL REFERENCES learning_projects(id),
			units_completed INTEGER NOT NULL,
			unit_covered TEXT NOT NULL DEFAULT '',
			duration INTEGER NOT NULL DEFAULT 0,
			progress TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			date %[2]s NOT NULL
		)`},
	{"exams table", `
		CREATE TABLE IF NOT EXISTS exams (
			id %[1]s,
			user_id %[3]s NOT NULL REFERENCES users(id),
			subject_id %[3]s REFERENCES subjects(id),
			name TEXT NOT NULL,
			exam_date %[2]s NOT NULL,
			board TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at %[2]s NOT NULL,
			updated_at %[2]s NOT NULL
		)`},
	{"essays table", `
		CREATE TABLE IF NOT EXISTS essays (
			id %[1]s,
			user_id %[3]s NOT NULL REFERENCES users(id),
			title TEXT NOT NULL,
			topic TEXT NOT NULL DEFAULT '',
			prompt TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL,
			word_count INTEGER NOT NULL DEFAULT 0,
			grade TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			created_at %[2]s NOT NULL,
			updated_at %[2]s NOT NULL
		)`},
	{"vocabulary table", `
		CREATE TABLE IF NOT EXISTS vocabulary (
			id %[1]s,
			user_id %[3]s NOT NULL REFERENCES users(id),
			word TEXT NOT NULL,
			definition TEXT NOT NULL,
			sentences TEXT NOT NULL DEFAULT '[]',
			category TEXT NOT NULL DEFAULT '',
			learned BOOLEAN NOT NULL DEFAULT FALSE,
			created_at %[2]s NOT NULL,
			updated_at %[2]s NOT NULL
		)`},
	{"grammar_rules table", `
		CREATE TABLE IF NOT EXISTS grammar_rules (
			id %[1]s,
			user_id %[3]s NOT NULL REFERENCES users(id),
			title TEXT NOT NULL,
			explanation TEXT NOT NULL,
			examples TEXT NOT NULL DEFAULT '[]',
			category TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'needs_work',
			created_at %[2]s NOT NULL,
			updated_at %[2]s NOT NULL
		)`},
	{"error_entries table", `
		CREATE TABLE IF NOT EXISTS error_entries (
			id %[1]s,
			user_id %[3]s NOT NULL REFERENCES users(id),
			category TEXT NOT NULL,
			description TEXT NOT NULL,
			correction TEXT NOT NULL,
			context TEXT NOT NULL DEFAULT '',
			resolved BOOLEAN NOT NULL DEFAULT FALSE,
			resolved_at %[2]s,
			created_at %[2]s NOT NULL,
			updated_at %[2]s NOT NULL
		)`},
	{"subtopics table", `
		CREATE TABLE IF NOT EXISTS subtopics (
			id %[1]s,
			topic_id %[3]s NOT NULL REFERENCES topics(id),
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			sort_order INTEGER NOT NULL DEFAULT 0,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			completed_at %[2]s,
			created_at %[2]s NOT NULL,
			updated_at %[2]s NOT NULL
		)`},
	{"practice_papers table", `
		CREATE TABLE IF NOT EXISTS practice_papers (
			id %[1]s,
			subject_id %[3]s NOT NULL REFERENCES subjects(id),
			topic_id %[3]s REFERENCES topics(id),
			paper_name TEXT NOT NULL,
			paper_type TEXT NOT NULL DEFAULT 'topical',
			pdf_url TEXT NOT NULL DEFAULT '',
			question_start TEXT NOT NULL,
			question_end TEXT NOT NULL,
			total_questions INTEGER,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			score INTEGER,
			total_marks INTEGER,
			notes TEXT NOT NULL DEFAULT '',
			reminder_days INTEGER,
			reminder_date %[2]s,
			created_at %[2]s NOT NULL,
			updated_at %[2]s NOT NULL
		)`},
	{"practice_papers index", `CREATE INDEX IF NOT EXISTS idx_practice_papers_subject_reminder ON practice_papers (subject_id, reminder_date)`},
	{"practice_paper_questions table", `
		CREATE TABLE IF NOT EXISTS practice_paper_questions (
			id %[1]s,
			practice_paper_id %[3]s NOT NULL REFERENCES practice_papers(id),
			question_number TEXT NOT NULL,
			status TEXT NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			created_at %[2]s NOT NULL,
			updated_at %[2]s NOT NULL,
			UNIQUE (practice_paper_id, question_number)
		)`},
	{"practice_paper_logs table", `
		CREATE TABLE IF NOT EXISTS practice_paper_logs (
			id %[1]s,
			practice_paper_id %[3]s NOT NULL REFERENCES practice_papers(id),
			question_start TEXT NOT NULL,
			question_end TEXT NOT NULL,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			score INTEGER,
			total_marks INTEGER,
			duration INTEGER NOT NULL DEFAULT 0,
			notes TEXT NOT NULL DEFAULT '',
			date %[2]s NOT NULL
		)`},
	{"notes table", `
		CREATE TABLE IF NOT EXISTS notes (
			id %[1]s,
			user_id %[3]s NOT NULL REFERENCES users(id),
			subject_id %[3]s REFERENCES subjects(id),
			topic_id %[3]s REFERENCES topics(id),
			subtopic_id %[3]s REFERENCES subtopics(id),
			title TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			file_url TEXT NOT NULL DEFAULT '',
			file_type TEXT NOT NULL DEFAULT '',
			last_position TEXT NOT NULL DEFAULT '',
			last_viewed_at %[2]s,
			created_at %[2]s NOT NULL,
			updated_at %[2]s NOT NULL
		)`},
	{"notes index", `CREATE INDEX IF NOT EXISTS idx_notes_user ON notes (user_id, created_at)`},
}
