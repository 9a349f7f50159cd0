//go:build !oidn

package denoise

func init() {
	RegisterUnavailable(OIDN, "OpenImageDenoise is not enabled (rebuild with -tags oidn)")
}
