package aws

import (
	"os"
	"strings"

	"github.com/loupecli/loupe/internal/config"
)

// BuildSubprocessEnv returns the environment for a child process so it
// resolves the same credentials and region as the running application.
// base is usually nil, in which case the parent environment is used.
func BuildSubprocessEnv(base []string, sel config.ProfileSelection, region string) []string {
	env := base
	if env == nil {
		env = os.Environ()
	}

	switch sel.Mode {
	case config.ModeNamedProfile:
		env = setEnvVar(env, "AWS_PROFILE", sel.ProfileName)
	case config.ModeEnvOnly:
		// Credentials come from the parent environment or IMDS; make sure
		// a stale AWS_PROFILE or shared config file does not shadow them.
		env = unsetEnvVar(env, "AWS_PROFILE")
		env = setEnvVar(env, "AWS_CONFIG_FILE", os.DevNull)
		env = setEnvVar(env, "AWS_SHARED_CREDENTIALS_FILE", os.DevNull)
	}

	if region != "" {
		env = setEnvVar(env, "AWS_REGION", region)
		env = setEnvVar(env, "AWS_DEFAULT_REGION", region)
	}

	return env
}

func setEnvVar(env []string, key, value string) []string {
	return append(unsetEnvVar(env, key), key+"="+value)
}

func unsetEnvVar(env []string, key string) []string {
	prefix := key + "="
	out := env[:0]
	for _, e := range env {
		if !strings.HasPrefix(e, prefix) {
			out = append(out, e)
		}
	}
	return out
}
