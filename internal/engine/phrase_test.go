package engine

import "testing"

// phraseFor runs a sentence through classification and phrase resolution,
// targeting the token at targetIndex in the full token list.
func phraseFor(t *testing.T, sentence string, targetIndex int) []ClassifiedWord {
	t.Helper()

	words := ClassifyWords(Tokenize(sentence))
	for _, w := range words {
		if w.OriginalIndex == targetIndex {
			return ResolvePhrase(words, w)
		}
	}
	t.Fatalf("no word token at index %d in %q", targetIndex, sentence)
	return nil
}

func phraseTexts(phrase []ClassifiedWord) []string {
	texts := make([]string, len(phrase))
	for i, w := range phrase {
		texts[i] = w.Text
	}
	return texts
}

func TestClassifyWords_IndicesAndTypes(t *testing.T) {
	t.Parallel()

	words := ClassifyWords(Tokenize("Meeting on Monday at 3pm"))

	want := []ClassifiedWord{
		{OriginalIndex: 0, Text: "meeting", Type: Other},
		{OriginalIndex: 2, Text: "on", Type: Preposition},
		{OriginalIndex: 4, Text: "monday", Type: Day},
		{OriginalIndex: 6, Text: "at", Type: Preposition},
		{OriginalIndex: 8, Text: "3pm", Type: Time},
	}

	if len(words) != len(want) {
		t.Fatalf("ClassifyWords: got %d words, want %d", len(words), len(want))
	}
	for i, w := range words {
		if w != want[i] {
			t.Errorf("word %d: got %+v, want %+v", i, w, want[i])
		}
	}
}

func TestResolvePhrase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		sentence    string
		targetIndex int
		want        []string
	}{
		{
			name:        "preposition joins backward",
			sentence:    "Meeting on Monday at 3pm",
			targetIndex: 4,
			want:        []string{"on", "monday"},
		},
		{
			name:        "article and preposition join backward",
			sentence:    "Meet me at the Studio",
			targetIndex: 8,
			want:        []string{"at", "the", "studio"},
		},
		{
			name:        "temporal modifier joins backward",
			sentence:    "Meeting on next Monday",
			targetIndex: 6,
			want:        []string{"on", "next", "monday"},
		},
		{
			name:        "backward scan capped at three positions",
			sentence:    "from the next on Monday",
			targetIndex: 8,
			want:        []string{"the", "next", "on", "monday"},
		},
		{
			name:        "backward stops at unrelated word",
			sentence:    "Team lunch on Monday",
			targetIndex: 6,
			want:        []string{"on", "monday"},
		},
		{
			name:        "backward passes over same-type word",
			sentence:    "Monday on Tuesday",
			targetIndex: 4,
			want:        []string{"on", "tuesday"},
		},
		{
			name:        "forward stops at preposition",
			sentence:    "Monday at 3pm",
			targetIndex: 0,
			want:        []string{"monday"},
		},
		{
			name:        "forward collects same-type run",
			sentence:    "office room building home studio",
			targetIndex: 0,
			want:        []string{"office", "room", "building", "home"},
		},
		{
			name:        "forward passes over unrelated word",
			sentence:    "Monday then Tuesday",
			targetIndex: 0,
			want:        []string{"monday", "tuesday"},
		},
		{
			name:        "forward collects article",
			sentence:    "room the office",
			targetIndex: 0,
			want:        []string{"room", "the", "office"},
		},
		{
			name:        "target alone",
			sentence:    "Monday",
			targetIndex: 0,
			want:        []string{"monday"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := phraseTexts(phraseFor(t, tt.sentence, tt.targetIndex))
			if len(got) != len(tt.want) {
				t.Fatalf("phrase = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("phrase = %q, want %q", got, tt.want)
				}
			}
		})
	}
}

func TestResolvePhrase_AlwaysContainsTarget(t *testing.T) {
	t.Parallel()

	words := ClassifyWords(Tokenize("Meeting on Monday at 3pm"))
	for _, target := range words {
		phrase := ResolvePhrase(words, target)
		found := false
		for _, w := range phrase {
			if w.OriginalIndex == target.OriginalIndex {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("phrase for %q does not contain the target", target.Text)
		}
	}
}

func TestResolvePhrase_UnknownTarget(t *testing.T) {
	t.Parallel()

	words := ClassifyWords(Tokenize("Meeting on Monday"))
	stray := ClassifiedWord{OriginalIndex: 99, Text: "ghost", Type: Other}

	phrase := ResolvePhrase(words, stray)
	if len(phrase) != 1 || phrase[0] != stray {
		t.Fatalf("phrase for unknown target = %+v, want just the target", phrase)
	}
}
