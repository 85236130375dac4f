package api

// Environment variables published into the child before exec. Children
// (and their descendants) use these for introspection; the `why`
// subcommand reads EnvCapFile to reconstruct the capability set.
const (
	// EnvSandboxed is set to "1" inside any nono sandbox.
	EnvSandboxed = "NONO_SANDBOXED"
	// EnvActive mirrors EnvSandboxed for tools that probe a generic
	// *_ACTIVE convention.
	EnvActive = "NONO_ACTIVE"
	// EnvAllowed is the colon-joined list of granted paths.
	EnvAllowed = "NONO_ALLOWED"
	// EnvNet is "allowed" or "blocked".
	EnvNet = "NONO_NET"
	// EnvBlocked is the colon-joined list of sensitive paths that were
	// not opted into by an explicit grant.
	EnvBlocked = "NONO_BLOCKED"
	// EnvHelp is a short hint pointing agents at `nono why`.
	EnvHelp = "NONO_HELP"
	// EnvCapFile is the absolute path of the capability state file.
	EnvCapFile = "NONO_CAP_FILE"
)

// HelpText is the value exported as EnvHelp.
const HelpText = "run `nono why --self --path <path> --op <read|write>` to see why an access was denied"
