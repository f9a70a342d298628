package pipeline

const transcriptPrompt = `Transcribe this audio into Traditional Chinese. Fix obvious grammar mistakes and filler words so it reads smoothly.
If there are several speakers, label each line with the speaker (for example "Speaker A:", "Speaker B:").
Output plain text only, one utterance per line, without timestamps or commentary.`

const originalTranscriptPrompt = `Produce a detailed verbatim transcript of this audio in the language actually spoken.
If several languages are mixed, keep them exactly as spoken and do not translate.
If there are several speakers, label each line with the speaker (for example "Speaker A:", "Speaker B:").
Output plain text only, without timestamps, summaries or notes.`

const summaryPrompt = `Summarize the transcript below in Traditional Chinese in a professional, objective tone.
Start with one short opening paragraph describing the overall topic.
Then list 3-5 key points. Each key point starts with a numbered bold subheading on its own line, for example "**1. Topic**",
followed by 2-3 detail lines that each begin with "- ".
Do not add a title and do not use HTML.`

const englishSummaryPrompt = `Summarize the transcript below in English. It may mix several languages.
Start with one short opening paragraph describing the overall topic.
Then list 3-5 key points. Each key point starts with a numbered bold subheading on its own line, for example "**1. Topic**",
followed by 2-4 detail lines that each begin with "- ".
Do not add a title, timestamps or HTML.`

// bilingualTranscriptLabel heads the original-language transcript.
const bilingualTranscriptLabel = "Original-language transcript"

// englishSummaryLabel heads the English summary appended in bilingual mode.
const englishSummaryLabel = "English Summary"
