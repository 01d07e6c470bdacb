package usage

var schema = []string{
	// version 1
	`
CREATE TABLE IF NOT EXISTS usage (
  timestamp datetime default current_timestamp,
  mode text not null,
  lengthIn integer,
  lengthOut integer
);

CREATE INDEX IF NOT EXISTS usage_mode ON usage (mode);
	`,
}
