package assistant

// Locale 是助手支持的界面语言。
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleFR Locale = "fr"
)

// ParseLocale 解析 locale 值，无法识别时回落到英文。
func ParseLocale(s string) Locale {
	switch s {
	case string(LocaleFR):
		return LocaleFR
	default:
		return LocaleEN
	}
}

// StringTable 是一种语言的完整话术表。
// 每个语言必须填满全部字段，缺字段在编译期即暴露，
// 不存在运行时按 key 查找落空的问题。
type StringTable struct {
	Greeting string

	ScheduleReply  string // 输入关键词命中排期意图时的回复（随内联表单出现）
	RedirectReply  string // 点击排期快捷选项时的回复（随跳转链接出现）
	QuestionReply  string
	ProjectsReply  string
	ServicesReply  string
	FallbackReply  string
	ScheduleDone   string // 排期提交成功后的确认消息
	SubjectPrefix  string // 合成排期留言主题的前缀

	LabelSchedule string
	LabelQuestion string
	LabelProjects string
	LabelServices string
}

var stringTables = map[Locale]StringTable{
	LocaleEN: {
		Greeting: "Hi there! I'm the site assistant. How can I help you today?",

		ScheduleReply: "Great, let's find a time! Fill in the form below and I'll pass it along.",
		RedirectReply: "Sure! You can pick a slot on the scheduling page — just follow the link below.",
		QuestionReply: "Of course — ask me anything, or drop a message through the contact form and you'll get a reply by email.",
		ProjectsReply: "You can browse the projects section for selected work, case studies and source links.",
		ServicesReply: "I can help with backend development, consulting and code reviews. Tell me more about what you need!",
		FallbackReply: "I'm not sure I got that. Would you like to schedule a call, or ask a question?",
		ScheduleDone:  "All set! Your request was sent — you'll get a confirmation by email. Anything else?",
		SubjectPrefix: "Schedule request",

		LabelSchedule: "Schedule a call",
		LabelQuestion: "Ask a question",
		LabelProjects: "See projects",
		LabelServices: "Services",
	},
	LocaleFR: {
		Greeting: "Bonjour ! Je suis l'assistant du site. Comment puis-je vous aider ?",

		ScheduleReply: "Parfait, trouvons un créneau ! Remplissez le formulaire ci-dessous et je transmets.",
		RedirectReply: "Bien sûr ! Vous pouvez choisir un créneau sur la page de prise de rendez-vous via le lien ci-dessous.",
		QuestionReply: "Bien sûr — posez votre question, ou laissez un message via le formulaire de contact et vous recevrez une réponse par email.",
		ProjectsReply: "Vous pouvez parcourir la section projets pour découvrir une sélection de réalisations.",
		ServicesReply: "Je peux aider sur le développement backend, le conseil et la revue de code. Dites-m'en plus !",
		FallbackReply: "Je ne suis pas sûr d'avoir compris. Souhaitez-vous planifier un appel, ou poser une question ?",
		ScheduleDone:  "C'est noté ! Votre demande a été envoyée — vous recevrez une confirmation par email. Autre chose ?",
		SubjectPrefix: "Demande de rendez-vous",

		LabelSchedule: "Planifier un appel",
		LabelQuestion: "Poser une question",
		LabelProjects: "Voir les projets",
		LabelServices: "Services",
	},
}

// Strings 返回指定语言的话术表。
func Strings(locale Locale) StringTable {
	if table, ok := stringTables[locale]; ok {
		return table
	}
	return stringTables[LocaleEN]
}

// greetingOptions 是首次打开挂件时附带的四个快捷选项。
func greetingOptions(t StringTable) []QuickOption {
	return []QuickOption{
		{Label: t.LabelSchedule, Value: OptionSchedule, Icon: "calendar"},
		{Label: t.LabelQuestion, Value: OptionQuestion, Icon: "help-circle"},
		{Label: t.LabelProjects, Value: OptionProjects, Icon: "folder"},
		{Label: t.LabelServices, Value: OptionServices, Icon: "briefcase"},
	}
}

// followUpOptions 是普通回复之后的两个常用入口。
func followUpOptions(t StringTable) []QuickOption {
	return []QuickOption{
		{Label: t.LabelSchedule, Value: OptionSchedule, Icon: "calendar"},
		{Label: t.LabelQuestion, Value: OptionQuestion, Icon: "help-circle"},
	}
}
