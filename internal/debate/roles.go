package debate

// rolePrompts holds the static instruction text for the three roles,
// keyed by language code.
var rolePrompts = map[string]struct{ pro, con, mediator string }{
	"ja": {
		pro: "あなたはPlan Aの長所と可能性を最大化して主張する役割。Plan Bの弱点とリスクを鋭く指摘する役割。" +
			"他の参加者の発言を受けて、さらに深い議論を展開し、反論や追加の論点を提示してください。" +
			"必ず日本語で応答してください。英語は使用しないでください。",
		con: "あなたはPlan Bの長所と可能性を最大化して主張する役割。Plan Aの弱点とリスクを鋭く指摘する役割。" +
			"他の参加者の発言を受けて、さらに深い議論を展開し、反論や追加の論点を提示してください。" +
			"必ず日本語で応答してください。英語は使用しないでください。",
		mediator: "あなたは調停役。ProとConの主張を統合し、議論を深めていく役割です。" +
			"最終ラウンドでは、両者の要素を最低1つずつ残し、さらに新規要素を1つ以上加えた第三案を必ず提示。" +
			"最後は3つの箇条書き:『残した長所』『回避したリスク』『新規要素』で締める。" +
			"途中のラウンドでは、争点を整理し、さらなる論点を引き出してください。" +
			"必ず日本語で応答してください。英語は使用しないでください。",
	},
	"en": {
		pro: "You advocate for Plan A: argue its strengths and potential as forcefully as you can, " +
			"and point out the weaknesses and risks of Plan B. Build on what the other participants " +
			"have said, deepen the discussion, and raise rebuttals and new points. Respond in English.",
		con: "You advocate for Plan B: argue its strengths and potential as forcefully as you can, " +
			"and point out the weaknesses and risks of Plan A. Build on what the other participants " +
			"have said, deepen the discussion, and raise rebuttals and new points. Respond in English.",
		mediator: "You are the mediator: integrate the arguments of Pro and Con and deepen the debate. " +
			"In the final round you must present a third plan that retains at least one element from " +
			"each side and adds at least one new element, closing with three labeled bullet groups: " +
			"'Retained strengths', 'Avoided risks', 'New elements'. In intermediate rounds, organize " +
			"the points of contention and draw out further arguments. Respond in English.",
	},
	"zh": {
		pro: "你是Plan A的支持者：最大限度地论证Plan A的优点和可能性，并尖锐指出Plan B的弱点和风险。" +
			"请在其他参与者发言的基础上深化讨论，提出反驳和新的论点。请务必用中文回答。",
		con: "你是Plan B的支持者：最大限度地论证Plan B的优点和可能性，并尖锐指出Plan A的弱点和风险。" +
			"请在其他参与者发言的基础上深化讨论，提出反驳和新的论点。请务必用中文回答。",
		mediator: "你是调停者：整合Pro和Con的主张并深化讨论。在最后一轮，你必须提出第三方案，" +
			"至少保留双方各一个要素，并加入至少一个新要素，最后以三组带标签的要点结尾：" +
			"『保留的优点』『规避的风险』『新要素』。在中间轮次，请梳理争论焦点并引出更多论点。请务必用中文回答。",
	},
}

// Roster returns the fixed speaking order Pro, Con, Mediator with
// instruction text in the given language. Unknown languages fall back
// to Japanese, matching the default configuration.
func Roster(language string) []Role {
	p, ok := rolePrompts[language]
	if !ok {
		p = rolePrompts["ja"]
	}
	return []Role{
		{Kind: RolePro, Name: "Pro", SystemPrompt: p.pro},
		{Kind: RoleCon, Name: "Con", SystemPrompt: p.con},
		{Kind: RoleMediator, Name: "Mediator", SystemPrompt: p.mediator},
	}
}

// Legend returns the participant legend for the transcript header.
func Legend() string {
	return "Pro (Plan A advocate), Con (Plan B advocate), Mediator (moderator)"
}
