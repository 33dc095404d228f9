package content

import "regexp"

type pattern struct {
	re     *regexp.Regexp
	weight float64
}

func p(expr string, weight float64) pattern {
	return pattern{re: regexp.MustCompile("(?i)" + expr), weight: weight}
}

// urgencyPatterns match pressure and fear phrases.
var urgencyPatterns = []pattern{ //nolint: gochecknoglobals
	p(`계정이?\s*정지`, 0.8),
	p(`즉시\s*확인`, 0.7),
	p(`24시간\s*내`, 0.6),
	p(`보안\s*위협`, 0.7),
	p(`비밀번호\s*변경\s*필요`, 0.6),
	p(`본인\s*확인`, 0.5),
	p(`계정이?\s*잠겼`, 0.8),
	p(`접속이?\s*제한`, 0.7),
	p(`이상\s*거래`, 0.8),
	p(`긴급\s*조치`, 0.7),
	p(`보안\s*업데이트`, 0.5),
	p(`개인\s*정보.*유출`, 0.8),
	p(`법적\s*조치`, 0.7),
	p(`48시간\s*이내`, 0.6),
	p(`account\s*suspended`, 0.8),
	p(`verify\s*immediately`, 0.7),
	p(`urgent\s*action\s*required`, 0.8),
	p(`your\s*account\s*has\s*been`, 0.6),
	p(`unauthorized\s*access`, 0.7),
	p(`security\s*alert`, 0.6),
	p(`confirm\s*your\s*identity`, 0.6),
	p(`unusual\s*activity`, 0.6),
	p(`immediate\s*action`, 0.7),
	p(`will\s*be\s*(locked|closed|suspended)`, 0.8),
}

// rewardPatterns match prize and giveaway lures.
var rewardPatterns = []pattern{ //nolint: gochecknoglobals
	p(`당첨`, 0.8),
	p(`무료\s*제공`, 0.6),
	p(`이벤트\s*당선`, 0.8),
	p(`상금`, 0.7),
	p(`경품`, 0.6),
	p(`축하합니다`, 0.7),
	p(`선정되었습니다`, 0.7),
	p(`수령하세요`, 0.6),
	p(`지급\s*대기`, 0.7),
	p(`congratulations.*won`, 0.8),
	p(`free\s*gift`, 0.7),
	p(`claim\s*your\s*prize`, 0.8),
	p(`you\s*(have\s*)?won`, 0.7),
	p(`selected\s*winner`, 0.8),
}

// KnownBrands are brand keywords looked for in titles, favicons and resource URLs.
var KnownBrands = []string{ //nolint: gochecknoglobals
	"naver", "kakao", "google", "apple", "samsung", "microsoft",
	"facebook", "instagram", "amazon", "paypal", "netflix",
	"네이버", "카카오", "구글", "삼성", "애플", "국민은행", "신한은행",
	"우리은행", "하나은행", "농협", "토스", "쿠팡",
}

var (
	imageExt    = regexp.MustCompile(`(?i)\.(png|jpg|jpeg|gif|svg|ico)`) //nolint: gochecknoglobals
	logoKeyword = regexp.MustCompile(`(?i)(logo|brand|icon)`)           //nolint: gochecknoglobals
)
