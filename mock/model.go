package mock_generator

type Fixture struct {
	Transcription StageFixture `json:"transcription"`
	Emotion       StageFixture `json:"emotion"`
	Prompt        StageFixture `json:"prompt"`
	Image         StageFixture `json:"image"`
}

// StageFixture is the canned outcome of one stage. Image output is a data URI.
type StageFixture struct {
	Output  string        `json:"output"`
	DelayMs int           `json:"delay_ms"`
	Error   *FixtureError `json:"error,omitempty"`
}

// FixtureError makes the stage fail as if the upstream had answered with Status and Body.
type FixtureError struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}
