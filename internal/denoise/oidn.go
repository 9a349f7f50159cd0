//go:build oidn

package denoise

/*
#cgo pkg-config: OpenImageDenoise
#include <stdlib.h>
#include <string.h>
#include <OpenImageDenoise/oidn.h>

typedef struct {
    int  has_error;
    char error_msg[256];
} oidn_result;

static void oidn_set_bool(OIDNFilter filter, const char *name, int value) {
#if OIDN_VERSION_MAJOR >= 2
    oidnSetFilterBool(filter, name, value != 0);
#else
    oidnSetFilter1b(filter, name, value != 0);
#endif
}

// oidn_denoise runs the "RT" filter on the CPU device. Strides are in bytes
// per pixel; albedo and normal may be NULL. The first three floats of each
// output pixel are overwritten, any further channels are left untouched.
static oidn_result oidn_denoise(float *color, size_t color_stride,
                                float *albedo, size_t albedo_stride,
                                float *normal, size_t normal_stride,
                                float *output, size_t width, size_t height, int hdr) {
    oidn_result res;
    memset(&res, 0, sizeof(res));

    OIDNDevice device = oidnNewDevice(OIDN_DEVICE_TYPE_CPU);
    if (device == NULL) {
        strncpy(res.error_msg, "failed to create device", sizeof(res.error_msg)-1);
        res.has_error = 1;
        return res;
    }
    oidnCommitDevice(device);

    OIDNFilter filter = oidnNewFilter(device, "RT");
    oidnSetSharedFilterImage(filter, "color", color, OIDN_FORMAT_FLOAT3,
                             width, height, 0, color_stride, color_stride * width);
    if (albedo != NULL) {
        oidnSetSharedFilterImage(filter, "albedo", albedo, OIDN_FORMAT_FLOAT3,
                                 width, height, 0, albedo_stride, albedo_stride * width);
    }
    if (normal != NULL) {
        oidnSetSharedFilterImage(filter, "normal", normal, OIDN_FORMAT_FLOAT3,
                                 width, height, 0, normal_stride, normal_stride * width);
    }
    oidnSetSharedFilterImage(filter, "output", output, OIDN_FORMAT_FLOAT3,
                             width, height, 0, color_stride, color_stride * width);
    oidn_set_bool(filter, "hdr", hdr);
    oidnCommitFilter(filter);
    oidnExecuteFilter(filter);

    const char *msg = NULL;
    if (oidnGetDeviceError(device, &msg) != OIDN_ERROR_NONE) {
        strncpy(res.error_msg, msg != NULL ? msg : "unknown error", sizeof(res.error_msg)-1);
        res.has_error = 1;
    }

    oidnReleaseFilter(filter);
    oidnReleaseDevice(device);
    return res;
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/shiinamiyuki/OneDenoiser/internal/ir"
)

func init() {
	Register(OIDN, oidnEngine{})
}

// OIDNVersion returns the OpenImageDenoise version the adapter was built
// against, e.g. 20300 for 2.3.0.
func OIDNVersion() int {
	return int(C.OIDN_VERSION)
}

type oidnEngine struct{}

func (oidnEngine) Name() string { return OIDN }

// Denoise copies the buffers into C memory, since the filter keeps pointers to
// them between calls, and copies the result back into a Go-managed image.
func (oidnEngine) Denoise(req Request) (*ir.Image, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	for _, img := range []*ir.Image{req.Color, req.Albedo, req.Normal} {
		if img != nil && img.Channels < 3 {
			return nil, fmt.Errorf("oidn: expected at least 3 channels, got %d", img.Channels)
		}
	}

	color := toC(req.Color)
	defer C.free(unsafe.Pointer(color))
	output := toC(req.Color)
	defer C.free(unsafe.Pointer(output))

	var albedo, normal *C.float
	var albedoStride, normalStride C.size_t
	if req.Albedo != nil {
		albedo = toC(req.Albedo)
		defer C.free(unsafe.Pointer(albedo))
		albedoStride = stride(req.Albedo)
	}
	if req.Normal != nil {
		normal = toC(req.Normal)
		defer C.free(unsafe.Pointer(normal))
		normalStride = stride(req.Normal)
	}

	hdr := C.int(0)
	if req.HDR {
		hdr = 1
	}

	res := C.oidn_denoise(
		color, stride(req.Color),
		albedo, albedoStride,
		normal, normalStride,
		output, C.size_t(req.Color.Width), C.size_t(req.Color.Height), hdr,
	)
	if res.has_error != 0 {
		return nil, fmt.Errorf("oidn: %s", C.GoString(&res.error_msg[0]))
	}

	out := ir.New(req.Color.Width, req.Color.Height, req.Color.Channels)
	copy(out.Pixels, unsafe.Slice((*float32)(unsafe.Pointer(output)), len(out.Pixels)))
	return out, nil
}

func toC(img *ir.Image) *C.float {
	n := len(img.Pixels)
	p := (*C.float)(C.malloc(C.size_t(n * 4)))
	copy(unsafe.Slice((*float32)(unsafe.Pointer(p)), n), img.Pixels)
	return p
}

func stride(img *ir.Image) C.size_t {
	return C.size_t(img.Channels * 4)
}
