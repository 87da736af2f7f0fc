package transcriber

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// whisperOutput mirrors the JSON file whisper.cpp writes with -oj.
type whisperOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Text string `json:"text"`
	} `json:"transcription"`
}

// Transcribe runs whisper on the audio file and returns the full transcript
// plus the detected language.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath string) (Result, error) {
	if _, err := os.Stat(t.cfg.BinaryPath); err != nil {
		return Result{}, fmt.Errorf("%w: whisper binary %s", ErrEngineUnavailable, t.cfg.BinaryPath)
	}
	if _, err := os.Stat(t.cfg.ModelPath); err != nil {
		return Result{}, fmt.Errorf("%w: model file %s", ErrEngineUnavailable, t.cfg.ModelPath)
	}
	if _, err := os.Stat(audioPath); err != nil {
		return Result{}, fmt.Errorf("audio file not found: %s", audioPath)
	}

	outDir, err := os.MkdirTemp("", "transcribe-*")
	if err != nil {
		return Result{}, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(outDir)
	outputPrefix := filepath.Join(outDir, "transcript")

	language := t.cfg.Language
	if language == "" {
		language = "auto"
	}

	// Whisper arguments:
	// -m: model path
	// -f: input audio file
	// -oj: write full JSON output (includes detected language)
	// -l: language ("auto" enables detection)
	// -t: number of threads
	// --output-file: output file prefix
	args := []string{
		"-m", t.cfg.ModelPath,
		"-f", audioPath,
		"-oj",
		"-l", language,
		"-t", strconv.Itoa(t.cfg.Threads),
		"--output-file", outputPrefix,
	}
	if t.cfg.Prompt != "" {
		args = append(args, "--prompt", t.cfg.Prompt)
	}

	t.logger.Info(ctx, "Starting transcription (%d threads): %s", t.cfg.Threads, audioPath)

	if _, err := t.executor.Execute(ctx, t.cfg.BinaryPath, args...); err != nil {
		return Result{}, fmt.Errorf("whisper transcribe: %w", err)
	}

	result, err := parseOutputFile(outputPrefix + ".json")
	if err != nil {
		return Result{}, err
	}

	t.logger.Info(ctx, "Transcription completed: %s (language: %s, %d chars)",
		audioPath, result.Language, len(result.Text))
	return result, nil
}

func parseOutputFile(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read whisper output: %w", err)
	}

	var parsed whisperOutput
	if err := json.Unmarshal(data, &parsed); err != nil {
		return Result{}, fmt.Errorf("parse whisper output: %w", err)
	}

	var parts []string
	for _, seg := range parsed.Transcription {
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}

	return Result{
		Text:     strings.Join(parts, " "),
		Language: parsed.Result.Language,
	}, nil
}
