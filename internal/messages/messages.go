// Package messages holds every user-facing text of the bot.
package messages

import (
	"fmt"
	"strings"
)

// General
const (
	WelcomeBack       = "به منوی اصلی خوش آمدید! چه کاری می‌خواهید انجام دهید؟"
	ErrorGeneral      = "متاسفانه مشکلی پیش آمده. لطفا دوباره تلاش کنید."
	ErrorStoreOffline = "متاسفانه ربات در حال حاضر به پایگاه داده متصل نیست. لطفا بعدا تلاش کنید."
	SectionSoon       = "این بخش به زودی فعال می‌شود... صبور باشید!"
	SectionSoonShort  = "این بخش به زودی فعال می‌شود"
	ChooseOption      = "لطفا یکی از گزینه‌های موجود را انتخاب کنید."
	AccessDenied      = "شما دسترسی ادمین ندارید."
	FirstAdmin        = "شما به عنوان اولین کاربر، ادمین ربات شدید!"
	CommandCancelled  = "عملیات لغو شد."
	InvalidStage      = "مرحله نامعتبر است."
)

func WelcomeNewUser(coins int) string {
	return fmt.Sprintf("سلام! به ربات اجتماعی دانش‌آموزی خوش آمدید. %d سکه اولیه به شما تعلق گرفت.", coins)
}

// ErrorGeneralInFlow is sent when a failure forced the user out of a dialog.
func ErrorGeneralInFlow() string {
	return ErrorGeneral + " به منوی اصلی خوش آمدید!"
}

// Onboarding
const (
	CompleteInitialRegistration = "برای ادامه، لطفاً اطلاعات اولیه خود را تکمیل کنید."
	InitialRegistrationGuide    = "به نظر می‌رسد اولین بار است که وارد می‌شوید یا اطلاعات شما ناقص است. لطفاً اطلاعات اولیه خود را تکمیل کنید.\n\nابتدا جنسیت خود را انتخاب کنید:"
	PleaseStart                 = "اطلاعات کاربری شما یافت نشد. لطفا دستور /start را ارسال کنید."
	ForcedJoinPrompt            = "برای استفاده از ربات، ابتدا باید در کانال‌های زیر عضو شوید:"
	ForcedJoinRefreshing        = "در حال بررسی وضعیت عضویت..."
	ForcedJoinStillUnjoined     = "هنوز در تمام کانال‌ها عضو نشده‌اید. لطفا بررسی کنید:"
	ForcedJoinCompleteInfo      = "عضویت شما تایید شد. حالا لطفا اطلاعات اولیه خود را تکمیل کنید."
	ForcedJoinAllDone           = "عضویت شما تایید شد و اطلاعات اولیه‌تان کامل است. " + WelcomeBack
	ForcedJoinRegisterStart     = "عضویت شما تایید شد. لطفا با ارسال /start ثبت نام خود را در ربات تکمیل کنید."
	RegistrationGuideMainMenu   = "ثبت‌نام اولیه شما تکمیل شد. اکنون به منوی اصلی هدایت می‌شوید."
	RegistrationIncomplete      = "اطلاعات ثبت اولیه ناقص است. لطفا دوباره تلاش کنید."
)

func GenderLabel(gender string) string {
	switch gender {
	case "male":
		return "آقا"
	case "female":
		return "خانم"
	}
	return ProfileFieldUnset
}

// MenuAfterRegistration greets the first /start after the registration
// dialog: the guide's second line, or WelcomeBack when it has none.
func MenuAfterRegistration() string {
	return secondLineOr(RegistrationGuideMainMenu, WelcomeBack)
}

func secondLineOr(text, fallback string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 1 && strings.TrimSpace(lines[1]) != "" {
		return lines[1]
	}
	return fallback
}

func RegistrationSuccess(gender, province, city string) string {
	return fmt.Sprintf("اطلاعات شما با موفقیت ثبت شد:\nجنسیت: %s\nاستان: %s\nشهر: %s", GenderLabel(gender), province, city)
}

func GenderChosen(gender string) string {
	return fmt.Sprintf("جنسیت: %s\n\nلطفا استان خود را انتخاب کنید:", GenderLabel(gender))
}

func ProvinceChosen(province string) string {
	return fmt.Sprintf("استان: %s\n\nلطفا شهر خود را انتخاب کنید:", province)
}

// Profile and coins
const (
	ProfileTitle         = "👤 نمایه شما 👤\n\n"
	ProfileFieldUnset    = "ثبت نشده"
	NamePrompt           = "لطفا نام خود را وارد کنید:"
	NameInvalid          = "نام وارد شده معتبر نیست. لطفا نامی بین ۲ تا ۵۰ کاراکتر وارد کنید."
	NameTextOnly         = "لطفا فقط نام خود را به صورت متن ارسال کنید."
	AgePrompt            = "لطفا سن خود را به عدد وارد کنید (مثلا: ۱۷):"
	AgeInvalid           = "سن وارد شده معتبر نیست. لطفا سن خود را به صورت یک عدد بین ۱۰ تا ۳۰ وارد کنید."
	AgeTextOnly          = "لطفا فقط سن خود را به صورت عدد ارسال کنید."
	SchoolPrompt         = "لطفا مدرسه خود را از لیست زیر انتخاب کنید:"
	SchoolNotFound       = "مدرسه‌ای برای انتخاب یافت نشد."
	SchoolLocationUnset  = "استان یا شهر شما در سیستم ثبت نشده است. لطفاً اطلاعات اولیه خود را تکمیل کنید."
	PhonePrompt          = "لطفا شماره تماس خود را با استفاده از دکمه زیر به اشتراک بگذارید:"
	PhoneButton          = "📱 اشتراک شماره تماس"
	PhoneNotOwn          = "لطفا فقط شماره تماس خودتان را به اشتراک بگذارید."
	PhoneUseButton       = "لطفا از دکمه \"📱 اشتراک شماره تماس\" استفاده کنید."
	UserInfoNotFound     = "اطلاعات کاربری شما یافت نشد. لطفا با /start مجددا شروع کنید."
	ReferralLinkFooter   = "\n\nبا دعوت از دوستان خود می‌توانید سکه بیشتری کسب کنید!"
	BackToMainMenuButton = "بازگشت به منوی اصلی"
)

func NameSuccess(name string) string {
	return fmt.Sprintf("نام شما \"%s\" با موفقیت ثبت شد.", name)
}

func AgeSuccess(age int) string {
	return fmt.Sprintf("سن شما \"%d\" با موفقیت ثبت شد.", age)
}

func NoSchoolsForCity(city, province string) string {
	return fmt.Sprintf("متاسفانه در حال حاضر مدرسه‌ای برای شهر %s در استان %s ثبت نشده است. این مورد به ادمین اطلاع داده خواهد شد.", city, province)
}

func SchoolSuccess(school string) string {
	return fmt.Sprintf("مدرسه شما \"%s\" با موفقیت ثبت شد.", school)
}

func PhoneSuccess(phone string) string {
	return fmt.Sprintf("شماره تماس شما (%s) با موفقیت ثبت شد.", phone)
}

func CompletionAward(coins int) string {
	return fmt.Sprintf("🎉 پروفایل شما تکمیل شد! %d سکه جایزه به شما تعلق گرفت.", coins)
}

func CoinsBalance(coins int) string {
	return fmt.Sprintf("💰 سکه‌های شما: %d", coins)
}

func ReferralLink(link string) string {
	return fmt.Sprintf("🔗 لینک دعوت اختصاصی شما:\n%s", link) + ReferralLinkFooter
}

func InviterAward(inviterName string, coins int) string {
	if inviterName == "" {
		inviterName = "جدید"
	}
	return fmt.Sprintf("کاربر %s با لینک دعوت شما وارد ربات شد و %d سکه به شما اضافه گردید.", inviterName, coins)
}

// Admin panel
const (
	AdminWelcome            = "👑 پنل ادمین 👑\n\nاز گزینه‌های زیر برای مدیریت ربات استفاده کنید:"
	AdminNoAdministeredChat = "شما ادمین ربات هستید.\n\n" +
		"در حال حاضر ربات در هیچ کانال یا گروهی به عنوان ادمین شناسایی نشده است.\n" +
		"لطفاً ربات را به کانال/گروه مورد نظر خود اضافه کرده و به آن دسترسی ادمینی بدهید.\n" +
		"سپس به این بخش بازگردید تا بتوانید آن را به عنوان کانال تبلیغی انتخاب کنید."
	AdminPickChat = "لطفاً کانال یا گروهی را که می‌خواهید به لیست عضویت اجباری اضافه کنید، از لیست زیر انتخاب نمایید.\n\n" +
		"ربات در کانال‌های زیر ادمین است:\n"
	AdminCurrentForcedHeader   = "\n\nکانال‌های عضویت اجباری فعلی:\n"
	AdminChatNotFoundAlert     = "کانال انتخاب شده یافت نشد. لیست ممکن است به‌روز نباشد."
	AdminChatNotFound          = "خطا: کانال انتخاب شده یافت نشد. لطفاً دوباره تلاش کنید."
	AdminPromoteInChannelOnly  = "این دستور باید در کانالی که می‌خواهید تبلیغ کنید ارسال شود، نه در چت خصوصی با ربات."
	AdminButtonTextInvalid     = "متن دکمه باید بین ۱ تا ۳۰ کاراکتر باشد. لطفا دوباره تلاش کنید:"
	AdminButtonTextAsText      = "لطفا متن روی دکمه را به صورت متن ارسال کنید."
	AdminConfirmOrCancel       = "لطفا یکی از گزینه‌های \"✅ تایید و افزودن\" یا \"❌ لغو\" را انتخاب کنید."
	AdminChannelAddCancel      = "عملیات افزودن کانال لغو شد."
	AdminChannelInfoMissing    = "خطا: اطلاعات کانال به درستی دریافت نشد. لطفا دوباره تلاش کنید."
	AdminLinkUnavailable       = "موجود نیست"
	AdminSchoolMgmtTitle       = " مدیریت مدارس | "
	AdminSchoolProvincePrompt  = "مرحله ۱: انتخاب استان \n\nلطفا استانی که می‌خواهید برای آن مدرسه اضافه کنید را انتخاب نمایید:"
	AdminSchoolExistingHeader  = "مدارس موجود:\n- "
	AdminSchoolNoExisting      = "در حال حاضر مدرسه‌ای برای این شهر ثبت نشده است.\n\n"
	AdminSchoolAddInstructions = "لطفا نام هر مدرسه را در یک پیام جداگانه ارسال کنید. پس از اتمام، روی دکمه 'اتمام و ذخیره' کلیک کنید."
	AdminSchoolNameInvalid     = "نام مدرسه باید بین ۳ تا ۱۰۰ کاراکتر باشد. لطفا دوباره تلاش کنید."
	AdminSchoolSaveNoNew       = "هیچ مدرسه‌ی جدیدی برای افزودن وارد نشده است. عملیات بدون تغییر پایان یافت."
	AdminSchoolNoProvinceCity  = "خطا: استان یا شهر انتخاب نشده است. عملیات لغو شد."
	AdminSchoolMgmtCancel      = "عملیات مدیریت مدارس لغو شد."
	AdminSchoolFallbackAdd     = "لطفا نام مدرسه را ارسال کنید یا روی دکمه \"اتمام و ذخیره\" یا \"لغو\" کلیک کنید."
	AdminSchoolFallbackChoose  = "لطفا یکی از گزینه‌های موجود را با کلیک روی دکمه‌ها انتخاب کنید یا عملیات را با /cancel لغو کنید."
)

func AdminChatSelected(title string) string {
	return fmt.Sprintf("کانال «%s» انتخاب شد.", title)
}

func AdminForcedChannelLine(text string, id int64) string {
	return fmt.Sprintf("- %s (ID: %d)\n", text, id)
}

func AdminPromoteChannelInfo(title string, id int64) string {
	return fmt.Sprintf("شما دستور /promote_channel را در کانال \"%s\" (ID: %d) ارسال کردید.", title, id)
}

func AdminPromoteChannelNoLink(title string, id int64) string {
	return fmt.Sprintf("ربات نتوانست لینک دعوتی برای کانال \"%s\" (ID: %d) ایجاد کند. ممکن است نیاز باشد لینک را دستی وارد کنید یا دسترسی ربات را بررسی نمایید.", title, id)
}

func AdminButtonTextPrompt(title string, id int64, link string) string {
	return fmt.Sprintf("کانال \"%s\" شناسایی شد. \nلینک: %s\n\nلطفا متنی که می‌خواهید روی دکمه شیشه‌ای این کانال (برای عضویت اجباری) نمایش داده شود را وارد کنید:", titleOrID(title, id), link)
}

func AdminConfirmAdd(title string, id int64, link, text string) string {
	return fmt.Sprintf("کانال: %s\nلینک: %s\nمتن دکمه: %s\n\nآیا این اطلاعات صحیح است و کانال به لیست عضویت اجباری اضافه شود؟", titleOrID(title, id), link, text)
}

func AdminChannelAdded(title string, id int64) string {
	return fmt.Sprintf("کانال \"%s\" با موفقیت به لیست کانال‌های عضویت اجباری اضافه شد.", titleOrID(title, id))
}

func AdminForcedChannelLost(title string, id int64) string {
	return fmt.Sprintf("توجه: ربات دیگر در کانال «%s» که یکی از کانال‌های عضویت اجباری بود، ادمین نیست یا از آن خارج شده است. لطفاً این مورد را در پنل ادمین بررسی کنید.", titleOrID(title, id))
}

func AdminSchoolCityPrompt(province string) string {
	return fmt.Sprintf("استان انتخاب شده: %s\n\n مدیریت مدارس | مرحله ۲: انتخاب شهر \n\nلطفا شهر مورد نظر را انتخاب کنید:", province)
}

// AdminSchoolAddPrompt lists the existing schools of the city and explains
// how to add more.
func AdminSchoolAddPrompt(province, city string, existing []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "استان: %s\nشهر: %s\n\nمدیریت مدارس | مرحله ۳: افزودن نام مدارس\n\n", province, city)
	if len(existing) > 0 {
		b.WriteString(AdminSchoolExistingHeader)
		b.WriteString(strings.Join(existing, "\n- "))
		b.WriteString("\n\n")
	} else {
		b.WriteString(AdminSchoolNoExisting)
	}
	b.WriteString(AdminSchoolAddInstructions)
	return b.String()
}

func AdminSchoolAlreadyQueued(name string) string {
	return fmt.Sprintf("مدرسه \"%s\" قبلا در لیست موقت شما برای افزودن در این نوبت، اضافه شده است.", name)
}

func AdminSchoolQueued(name string, queued []string) string {
	return fmt.Sprintf("مدرسه \"%s\" به لیست افزوده شد. \nمدارس جدید در صف: %s\n\nبرای افزودن مدرسه بعدی، نام آن را ارسال کنید یا برای پایان، دکمه \"اتمام و ذخیره\" را بزنید.", name, strings.Join(queued, "، "))
}

func AdminSchoolsSaved(city, province string, saved []string) string {
	return fmt.Sprintf("تعداد %d مدرسه جدید با موفقیت برای شهر %s در استان %s ذخیره/به‌روزرسانی شد: \n- %s", len(saved), city, province, strings.Join(saved, "\n- "))
}

// Buttons
const (
	BtnProfile        = "👤 نمایه من"
	BtnCoins          = "💰 سکه‌های من"
	BtnAnonymousChat  = "💬 چت با ناشناس"
	BtnSubmitReview   = "✍️ ثبت نظر"
	BtnNearbyReviews  = "👀 نظرات اطراف"
	BtnAdminPanel     = "👑 پنل ادمین"
	BtnEnterName      = "📝 ثبت نام"
	BtnEnterAge       = "🎂 ثبت سن"
	BtnSelectSchool   = "🏫 انتخاب مدرسه"
	BtnEnterPhone     = "📞 ثبت شماره"
	BtnJoined         = "✅ عضو شدم"
	BtnMale           = "🚹 آقا"
	BtnFemale         = "🚺 خانم"
	BtnManageChannels = "📢 مدیریت کانال‌های تبلیغی"
	BtnManageSchools  = "🏫 مدیریت مدارس"
	BtnRetryChats     = "🔄 تلاش مجدد برای بارگذاری لیست"
	BtnBackToAdmin    = "بازگشت به پنل ادمین"
	BtnBackToChannels = "بازگشت به مدیریت کانال‌ها"
	BtnConfirmChannel = "✅ تایید و افزودن"
	BtnCancel         = "❌ لغو"
	BtnFinishSchools  = "اتمام و ذخیره مدارس"
	BtnCancelSchools  = "لغو و بازگشت"
)

// ChannelFallbackLabel labels a forced channel without button text.
func ChannelFallbackLabel(id int64) string {
	return fmt.Sprintf("کانال %d", id)
}

func titleOrID(title string, id int64) string {
	if title != "" {
		return title
	}
	return fmt.Sprintf("%d", id)
}

// ProfileCard is the read-only profile view. Zero fields render as unset.
type ProfileCard struct {
	Name     string
	Age      int
	Gender   string
	Province string
	City     string
	School   string
	Phone    string
	Coins    int
}

func (p ProfileCard) String() string {
	age := ProfileFieldUnset
	if p.Age > 0 {
		age = fmt.Sprintf("%d", p.Age)
	}
	var b strings.Builder
	b.WriteString(ProfileTitle)
	fmt.Fprintf(&b, "▫️ نام: %s\n", orUnset(p.Name))
	fmt.Fprintf(&b, "▫️ سن: %s\n", age)
	fmt.Fprintf(&b, "▫️ جنسیت: %s\n", GenderLabel(p.Gender))
	fmt.Fprintf(&b, "▫️ استان: %s\n", orUnset(p.Province))
	fmt.Fprintf(&b, "▫️ شهر: %s\n", orUnset(p.City))
	fmt.Fprintf(&b, "▫️ مدرسه: %s\n", orUnset(p.School))
	fmt.Fprintf(&b, "▫️ شماره تماس: %s\n", orUnset(p.Phone))
	b.WriteString(CoinsBalance(p.Coins))
	return b.String()
}

func orUnset(s string) string {
	if s == "" {
		return ProfileFieldUnset
	}
	return s
}
