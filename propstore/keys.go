package propstore

// Well-known build property keys.
const (
	KeyBuildFingerprint    = "ro.build.fingerprint"
	KeyBuildTags           = "ro.build.tags"
	KeyBuildType           = "ro.build.type"
	KeyBuildDisplayID      = "ro.build.display.id"
	KeyBuildID             = "ro.build.id"
	KeyBuildDate           = "ro.build.date"
	KeyVersionRelease      = "ro.build.version.release"
	KeyVersionSDK          = "ro.build.version.sdk"
	KeyVersionIncremental  = "ro.build.version.incremental"
	KeyProductBrand        = "ro.product.brand"
	KeyProductModel        = "ro.product.model"
	KeyProductManufacturer = "ro.product.manufacturer"
	KeyProductName         = "ro.product.name"
	KeyProductDevice       = "ro.product.device"
	KeyHardware            = "ro.hardware"
	KeyDebuggable          = "ro.debuggable"
	KeySecure              = "ro.secure"
)
