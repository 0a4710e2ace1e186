package envvar

const (
	// VoxloomEnv is the environment variable used to determine the environment
	VoxloomEnv = "VOXLOOM_ENV"

	// VoxloomModelsPath is the environment variable used to override the models directory
	VoxloomModelsPath = "VOXLOOM_MODELS_PATH"

	// VoxloomRunLog is the environment variable used to override the run log path
	VoxloomRunLog = "VOXLOOM_RUN_LOG"
)
