package feedback

// KoreanTemplates is the default learner-facing message set.
var KoreanTemplates = TemplateSet{
	RulePerfect: {
		Praise: "🎉 완벽해요! 모든 단어를 정확하게 말했어요.",
		Tip:    "💡 발음과 속도 모두 아주 자연스러워요.",
		Next:   "👉 다음에는 조금 더 어려운 문장에 도전해 보세요!",
	},
	RuleNearPerfect: {
		Praise: "👏 거의 완벽해요! 빠진 단어 없이 모두 말했어요.",
		Tip:    "💡 문장의 리듬과 억양에 조금 더 신경 써 보세요.",
		Next:   "👉 원어민 음성을 한 번 더 듣고 억양을 따라 해 보세요.",
	},
	RuleClose: {
		Praise: "😊 아주 잘했어요! 거의 다 맞았어요.",
		Tip:    "💡 '{missed}' 단어를 놓쳤어요. 발음을 다시 확인해 보세요.",
		Next:   "👉 놓친 단어를 천천히 몇 번 반복한 뒤 문장 전체를 다시 말해 보세요.",
	},
	RuleKeepPracticing: {
		Praise: "🙂 좋아요! 조금만 더 연습하면 돼요.",
		Tip:    "💡 문장을 천천히, 또박또박 읽어 보세요.",
		Next:   "👉 한 번 더 도전해 보세요!",
	},
	RuleAlmostThere: {
		Praise: "💪 거의 다 왔어요!",
		Tip:    "💡 '{missed}' 부분을 특히 연습해 보세요.",
		Next:   "👉 해당 단어에 집중해서 다시 말해 보세요.",
	},
	RuleTryAgain: {
		Praise: "🌱 좋은 시도예요!",
		Tip:    "💡 문장을 짧게 끊어서 하나씩 연습해 보세요.",
		Next:   "👉 다시 한 번 천천히 말해 보세요.",
	},
}

// DefaultFallbackMessage is returned when remote feedback cannot be obtained.
const DefaultFallbackMessage = "🙌 잘하고 있어요! 계속 연습하면 분명 더 좋아질 거예요. 다시 한 번 도전해 보세요!"
