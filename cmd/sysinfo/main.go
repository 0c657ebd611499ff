// sysinfo prints a YAML summary of the calling process as the kernel sees
// it: identity, groups, priorities, resource limits and usage.
package main

import (
	"context"
	"os"

	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"gopkg.in/yaml.v3"
)

func main() {
	ctx := context.Background()
	logger := slogutil.New(nil)

	info, err := collect()
	if err != nil {
		logger.ErrorContext(ctx, "collecting process info", slogutil.KeyError, err)

		os.Exit(1)
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)

	err = enc.Encode(info)
	if err != nil {
		logger.ErrorContext(ctx, "encoding process info", slogutil.KeyError, err)

		os.Exit(1)
	}

	err = enc.Close()
	if err != nil {
		logger.ErrorContext(ctx, "encoding process info", slogutil.KeyError, err)

		os.Exit(1)
	}
}
