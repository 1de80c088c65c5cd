package assistantRepository

const (
	keySettings       = "vani:settings"
	keyCustomCommands = "vani:custom_commands"
)
