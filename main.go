// Command trustscore scores ML models, datasets and code repositories.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/huangsam/trustscore/cmd"
	"github.com/huangsam/trustscore/internal/history"
)

func main() {
	cmd.SetHistoryManager(history.Manager)
	err := cmd.Execute()
	history.CloseHistory()
	if err == nil {
		return
	}
	if errors.Is(err, cmd.ErrNoInput) {
		_, _ = fmt.Fprintln(os.Stderr, err)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	}
	os.Exit(1)
}
