//go:build windows

package winbridge

import (
	"os/exec"
	"strings"
)

// speakText drives the SAPI synthesizer through PowerShell. The input has
// already been sanitized; doubling single quotes keeps the literal intact
// inside the PowerShell string.
func speakText(text string) error {
	quoted := strings.ReplaceAll(text, "'", "''")
	script := "Add-Type -AssemblyName System.Speech; " +
		"(New-Object System.Speech.Synthesis.SpeechSynthesizer).Speak('" + quoted + "')"

	cmd := exec.Command("powershell", "-NoProfile", "-NonInteractive", "-Command", script)
	return cmd.Run()
}
