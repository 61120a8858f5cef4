package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation    ErrCode = "VALIDATION_ERROR"
	ErrInvalidID     ErrCode = "INVALID_ID"
	ErrInvalidStatus ErrCode = "INVALID_STATUS"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound            ErrCode = "NOT_FOUND"
	ErrCourseNotFound      ErrCode = "COURSE_NOT_FOUND"
	ErrBlogNotFound        ErrCode = "BLOG_NOT_FOUND"
	ErrBannerNotFound      ErrCode = "BANNER_NOT_FOUND"
	ErrApplicationNotFound ErrCode = "APPLICATION_NOT_FOUND"
	ErrStudentNotFound     ErrCode = "STUDENT_NOT_FOUND"

	// ─── Applications ──────────────────────────────────────────────────
	ErrDuplicateEmail ErrCode = "DUPLICATE_EMAIL"
	ErrDuplicatePhone ErrCode = "DUPLICATE_PHONE"

	// ─── Media ─────────────────────────────────────────────────────────
	ErrFileRequired    ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge    ErrCode = "FILE_TOO_LARGE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "E-posta veya şifre hatalı"
	case ErrSessionInvalidated:
		return "Oturumunuz sona erdi. Lütfen tekrar giriş yapın."
	case ErrTokenRequired:
		return "Kimlik doğrulama anahtarı gerekli."
	case ErrTokenInvalid:
		return "Kimlik doğrulama anahtarı geçersiz."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Doğrulama başarısız. Lütfen girdiğiniz bilgileri kontrol edin."
	case ErrInvalidID:
		return "Geçersiz ID formatı."
	case ErrInvalidStatus:
		return "Geçersiz durum. İzin verilen değerler: pending, approved, rejected."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Kaynak bulunamadı."
	case ErrCourseNotFound:
		return "Kurs bulunamadı"
	case ErrBlogNotFound:
		return "Blog yazısı bulunamadı"
	case ErrBannerNotFound:
		return "Banner bulunamadı"
	case ErrApplicationNotFound:
		return "Başvuru bulunamadı"
	case ErrStudentNotFound:
		return "Öğrenci bulunamadı"

	// ─── Applications ──────────────────────────────────────────────────
	case ErrDuplicateEmail:
		return "Bu kurs için aynı email adresi ile zaten başvuru yapılmış."
	case ErrDuplicatePhone:
		return "Bu kurs için aynı telefon numarası ile zaten başvuru yapılmış."

	// ─── Media ─────────────────────────────────────────────────────────
	case ErrFileRequired:
		return "Resim dosyası bulunamadı"
	case ErrUnsupportedFile:
		return "Sadece JPEG, PNG ve WEBP formatları desteklenir."
	case ErrFileTooLarge:
		return "Dosya boyutu sınırı aşıldı."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Çok fazla istek gönderildi. Lütfen daha sonra tekrar deneyin."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Sunucu hatası"
	default:
		return "Beklenmeyen bir hata oluştu."
	}
}
