package version

// Version es la versión actual de MateRisk.
// Se puede sobreescribir en el build con -ldflags "-X .../internal/version.Version=x.y.z"
var Version = "0.1.0"

// FullVersion retorna la versión con el prefijo v
func FullVersion() string {
	return "v" + Version
}
