package i18n

import "github.com/credittalk/api/internal/constants"

// catalogs 各语言文案表
var catalogs = map[string]map[string]string{
	constants.LocaleKoKR: {
		// 通用
		"error.bad_request":       "잘못된 요청입니다.",
		"error.unauthorized":      "로그인이 필요합니다.",
		"error.forbidden":         "접근 권한이 없습니다.",
		"error.not_found":         "요청한 리소스를 찾을 수 없습니다.",
		"error.internal":          "서버 오류가 발생했습니다.",
		"error.too_many_requests": "요청이 너무 잦습니다. 잠시 후 다시 시도해주세요.",
		"error.user_id_invalid":   "사용자 정보가 올바르지 않습니다.",

		// 인증 토큰
		"error.jwt_secret_missing":  "서버 인증 설정이 올바르지 않습니다.",
		"error.auth_header_missing": "인증 정보가 없습니다.",
		"error.auth_header_invalid": "인증 정보 형식이 올바르지 않습니다.",
		"error.token_invalid":       "유효하지 않은 인증 토큰입니다.",
		"error.rate_limited":        "요청이 너무 잦습니다. 잠시 후 다시 시도해주세요.",

		// 비밀번호 정책
		"error.password_min_length":     "비밀번호는 %d자 이상이어야 합니다.",
		"error.password_require_number": "비밀번호에 숫자가 포함되어야 합니다.",

		// 휴대폰 인증
		"error.phone_invalid":     "유효하지 않은 전화번호 형식입니다.",
		"error.phone_exists":      "이미 가입된 전화번호입니다.",
		"error.otp_send_failed":   "인증번호 발송에 실패했습니다.",
		"error.otp_invalid":       "인증번호가 유효하지 않습니다.",
		"error.otp_expired":       "인증번호가 만료되었습니다. 다시 시도해주세요.",
		"error.otp_used":          "이미 사용된 인증번호입니다.",
		"message.otp_sent":        "인증번호가 발송되었습니다.",

		// 회원가입
		"error.fields_required":    "모든 필드를 입력해주세요.",
		"error.email_exists":       "이미 사용 중인 이메일입니다.",
		"error.nickname_exists":    "이미 사용 중인 닉네임입니다.",
		"error.nickname_too_short": "닉네임은 2자 이상이어야 합니다.",
		"error.signup_failed":      "회원가입에 실패했습니다.",
		"message.signup_done":      "회원가입이 완료되었습니다.",

		// 계정
		"error.user_not_found":    "일치하는 회원 정보를 찾을 수 없습니다.",
		"error.profile_not_found": "회원 정보를 찾을 수 없습니다.",
		"message.account_deleted": "회원 탈퇴가 완료되었습니다.",
		"message.push_token_saved": "푸시 토큰이 저장되었습니다.",

		// 네이버 로그인
		"error.naver_auth_failed": "네이버 로그인에 실패했습니다.",
		"error.naver_disabled":    "네이버 로그인을 사용할 수 없습니다.",

		// 사기 이력 제보
		"error.report_fields_required": "필수 항목을 모두 입력해주세요.",
		"error.report_not_found":       "제보를 찾을 수 없습니다.",
		"error.report_create_failed":   "제보 등록에 실패했습니다.",
		"message.report_created":       "제보가 등록되었습니다.",
		"error.audio_analysis_failed":  "음성 분석에 실패했습니다.",
		"message.audio_analysis_done":  "음성 분석이 완료되었습니다.",

		// 채팅
		"error.chat_self":               "자기 자신과는 채팅할 수 없습니다.",
		"error.chat_room_create_failed": "채팅방 생성에 실패했습니다.",

		// 검색 기록
		"error.search_term_required": "검색어를 입력해주세요.",
		"message.search_logged":      "검색 기록이 저장되었습니다.",

		// 통계
		"error.stats_failed": "통계 조회에 실패했습니다.",

		// 관리자
		"error.admin_login_failed":    "아이디 또는 비밀번호가 올바르지 않습니다.",
		"error.admin_disabled":        "비활성화된 계정입니다.",
		"error.admin_id_invalid":      "관리자 정보가 올바르지 않습니다.",
		"error.admin_id_type_invalid": "관리자 정보를 확인할 수 없습니다.",
		"error.password_old_invalid":  "기존 비밀번호가 올바르지 않습니다.",
		"error.report_fetch_failed":   "제보 조회에 실패했습니다.",
		"message.password_updated":    "비밀번호가 변경되었습니다.",
		"error.decrypt_failed":        "[복호화 실패]",
	},
	constants.LocaleEnUS: {
		"error.bad_request":       "Invalid request.",
		"error.unauthorized":      "Authentication required.",
		"error.forbidden":         "Access denied.",
		"error.not_found":         "Resource not found.",
		"error.internal":          "Internal server error.",
		"error.too_many_requests": "Too many requests. Please try again later.",
		"error.user_id_invalid":   "Invalid user identity.",

		"error.jwt_secret_missing":  "Server authentication is misconfigured.",
		"error.auth_header_missing": "Authorization header is missing.",
		"error.auth_header_invalid": "Authorization header is malformed.",
		"error.token_invalid":       "Invalid authentication token.",
		"error.rate_limited":        "Too many requests. Please try again later.",

		"error.password_min_length":     "Password must be at least %d characters.",
		"error.password_require_number": "Password must contain a number.",

		"error.phone_invalid":   "Invalid phone number format.",
		"error.phone_exists":    "This phone number is already registered.",
		"error.otp_send_failed": "Failed to send verification code.",
		"error.otp_invalid":     "Invalid verification code.",
		"error.otp_expired":     "Verification code has expired. Please try again.",
		"error.otp_used":        "Verification code has already been used.",
		"message.otp_sent":      "Verification code has been sent.",

		"error.fields_required":    "All fields are required.",
		"error.email_exists":       "This email is already in use.",
		"error.nickname_exists":    "This nickname is already in use.",
		"error.nickname_too_short": "Nickname must be at least 2 characters.",
		"error.signup_failed":      "Sign-up failed.",
		"message.signup_done":      "Sign-up completed.",

		"error.user_not_found":     "No matching account found.",
		"error.profile_not_found":  "Profile not found.",
		"message.account_deleted":  "Account has been deleted.",
		"message.push_token_saved": "Push token saved.",

		"error.naver_auth_failed": "Naver sign-in failed.",
		"error.naver_disabled":    "Naver sign-in is not available.",

		"error.report_fields_required": "Required report fields are missing.",
		"error.report_not_found":       "Report not found.",
		"error.report_create_failed":   "Failed to create report.",
		"message.report_created":       "Report has been created.",
		"error.audio_analysis_failed":  "Audio analysis failed.",
		"message.audio_analysis_done":  "Audio analysis completed.",

		"error.chat_self":               "Cannot start a chat with yourself.",
		"error.chat_room_create_failed": "Failed to create chat room.",

		"error.search_term_required": "Search term is required.",
		"message.search_logged":      "Search term logged.",

		"error.stats_failed": "Failed to load statistics.",

		"error.admin_login_failed":    "Invalid username or password.",
		"error.admin_disabled":        "This account is disabled.",
		"error.admin_id_invalid":      "Invalid admin identity.",
		"error.admin_id_type_invalid": "Unable to verify admin identity.",
		"error.password_old_invalid":  "Current password is incorrect.",
		"error.report_fetch_failed":   "Failed to load reports.",
		"message.password_updated":    "Password has been updated.",
		"error.decrypt_failed":        "[decryption failed]",
	},
}
