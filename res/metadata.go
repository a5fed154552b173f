package res

const (
	AppName       = "vrmusicremote"
	AppID         = "io.github.dweymouth.vrmusicremote"
	DisplayName   = "VR Music Remote"
	AppVersion    = "0.3.0"
	AppVersionTag = "v" + AppVersion
	GithubURL     = "https://github.com/dweymouth/vrmusicremote"
)
