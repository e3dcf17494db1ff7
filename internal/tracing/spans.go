package tracing

// Span attribute keys.
const (
	AttrCommandPath = "command.path"
	AttrCommandArgs = "command.args"

	AttrKVOp    = "kv.op"
	AttrKVKey   = "kv.key"
	AttrKVFound = "kv.found"
	AttrKVBytes = "kv.bytes"

	AttrBackupKey       = "backup.key"
	AttrBackupExercises = "backup.exercises"
	AttrBackupEntries   = "backup.entries"
	AttrBackupBytes     = "backup.bytes"
)

// Span name prefixes.
const (
	SpanPrefixCommand = "cli."
	SpanPrefixKV      = "kvstore."
	SpanPrefixBackup  = "backup."
)
