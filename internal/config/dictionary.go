package config

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/glowlab/retention-cli/internal/model"
)

// DictionaryFile is the YAML shape of the editorial dictionaries: brand
// targets, attribute patterns, the hero product, lifestyle tags and the
// keyword lists the engine matches against. Keeping these as data
// decouples matching logic from editorial content.
type DictionaryFile struct {
	Targets []struct {
		Name    string `yaml:"name"`
		BrandKW string `yaml:"brand_kw"`
		ProdKW  string `yaml:"prod_kw"`
	} `yaml:"targets"`
	Patterns []struct {
		Name    string `yaml:"name"`
		Pattern string `yaml:"pattern"`
	} `yaml:"patterns"`
	Hero struct {
		Name       string   `yaml:"name"`
		BrandKW    string   `yaml:"brand_kw"`
		ProductKWs []string `yaml:"product_kws"`
	} `yaml:"hero"`
	Tags []struct {
		Name     string   `yaml:"name"`
		Keywords []string `yaml:"keywords"`
	} `yaml:"tags"`
	CoreExclusions   []string `yaml:"core_exclusions"`
	NegativeKeywords []string `yaml:"negative_keywords"`
	Consolidations   []struct {
		Label   string `yaml:"label"`
		BrandKW string `yaml:"brand_kw"`
		GoodsKW string `yaml:"goods_kw"`
	} `yaml:"consolidations"`
}

// Dictionaries holds the compiled editorial configuration the engine
// consumes.
type Dictionaries struct {
	Targets          []model.BrandTarget
	Patterns         model.PatternSet
	Hero             model.HeroProduct
	Tags             model.TagDictionary
	CoreExclusion    model.AttributePattern
	NegativeKeywords []string
	Consolidations   []model.Consolidation
}

// LoadDictionaries reads and compiles the dictionaries YAML at path.
// An empty path yields the built-in reference deployment.
func LoadDictionaries(path string) (*Dictionaries, error) {
	file := defaultDictionaryFile()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrap(err, "config: read dictionaries")
		}
		file = DictionaryFile{}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, eris.Wrap(err, "config: parse dictionaries")
		}
	}
	return compileDictionaries(file)
}

func compileDictionaries(file DictionaryFile) (*Dictionaries, error) {
	d := &Dictionaries{NegativeKeywords: file.NegativeKeywords}

	for _, t := range file.Targets {
		target, err := model.NewBrandTarget(t.Name, t.BrandKW, t.ProdKW)
		if err != nil {
			return nil, err
		}
		d.Targets = append(d.Targets, target)
	}

	for _, p := range file.Patterns {
		pattern, err := model.NewAttributePattern(p.Name, p.Pattern)
		if err != nil {
			return nil, err
		}
		d.Patterns = append(d.Patterns, pattern)
	}

	if file.Hero.BrandKW != "" {
		hero, err := model.NewHeroProduct(file.Hero.Name, file.Hero.BrandKW, file.Hero.ProductKWs)
		if err != nil {
			return nil, err
		}
		d.Hero = hero
	}

	for _, tg := range file.Tags {
		d.Tags = append(d.Tags, model.Tag{Name: tg.Name, Keywords: tg.Keywords})
	}

	if len(file.CoreExclusions) > 0 {
		core, err := model.NewAttributePattern("core-category", strings.Join(file.CoreExclusions, "|"))
		if err != nil {
			return nil, err
		}
		d.CoreExclusion = core
	}

	for _, c := range file.Consolidations {
		cons, err := model.NewConsolidation(c.Label, c.BrandKW, c.GoodsKW)
		if err != nil {
			return nil, err
		}
		d.Consolidations = append(d.Consolidations, cons)
	}

	return d, nil
}

// defaultDictionaryFile is the reference deployment: five toner brands,
// eleven review attributes and the lifestyle tag dictionary.
func defaultDictionaryFile() DictionaryFile {
	var f DictionaryFile

	for _, t := range []struct{ name, brandKW, prodKW string }{
		{"라운드랩", `라운드랩|Round\s*Lab|독도`, `토너|스킨|독도`},
		{"에스네이처", `에스네이처|S\.NATURE|SNATURE`, `토너|스킨`},
		{"토리든", `토리든|Torriden`, `토너|스킨`},
		{"아비브", `아비브|Abib`, `토너|스킨|부스터`},
		{"토니모리", `토니모리|TONYMOLY`, `모찌|세라마이드|원더`},
	} {
		f.Targets = append(f.Targets, struct {
			Name    string `yaml:"name"`
			BrandKW string `yaml:"brand_kw"`
			ProdKW  string `yaml:"prod_kw"`
		}{t.name, t.brandKW, t.prodKW})
	}

	for _, p := range []struct{ name, pattern string }{
		{"수분/보습", `수분|촉촉`},
		{"진정", `진정|가라앉|뒤집어`},
		{"붉은기", `붉은|홍조|열감`},
		{"트러블", `트러블|여드름|좁쌀`},
		{"순함", `순함|순해|순한`},
		{"자극없음", `자극|따가|아프`},
		{"가성비", `가성비|저렴|싸게|가격|세일|1\+1|양도|용량`},
		{"물제형", `물제형|물같|워터`},
		{"산뜻함", `산뜻|가볍|끈적임없`},
		{"흡수력", `흡수|스며`},
		{"무난함", `무난|호불호|데일리`},
	} {
		f.Patterns = append(f.Patterns, struct {
			Name    string `yaml:"name"`
			Pattern string `yaml:"pattern"`
		}{p.name, p.pattern})
	}

	f.Hero.Name = "라운드랩 1025 독도 토너"
	f.Hero.BrandKW = "라운드랩"
	f.Hero.ProductKWs = []string{"독도", "토너"}

	for _, tg := range []struct {
		name     string
		keywords []string
	}{
		{"상의 (Basic/T-shirt)", []string{"반팔", "티셔츠", "롱슬리브", "무지", "탑", "긴팔", "T-SHIRT", "TEE", "BASIC"}},
		{"상의 (Sweat/Hoodie)", []string{"맨투맨", "스웨트", "후드", "집업", "아노락", "SWEATSHIRT", "HOODIE", "MTM"}},
		{"상의 (Knit/Shirt)", []string{"니트", "스웨터", "가디건", "셔츠", "KNIT", "CARDIGAN", "SHIRT"}},
		{"아우터 (Outer)", []string{"패딩", "코트", "자켓", "점퍼", "파카", "플리스", "PADDING", "COAT", "JACKET"}},
		{"하의 (Pants/Denim)", []string{"바지", "팬츠", "데님", "청바지", "슬랙스", "조거", "PANTS", "DENIM", "SLACKS"}},
		{"신발 (Shoes)", []string{"스니커즈", "운동화", "런닝화", "구두", "부츠", "SNEAKERS", "SHOES"}},
		{"가방/모자 (Bag/Head)", []string{"가방", "백팩", "메신저백", "모자", "볼캡", "비니", "BAG", "CAP", "HAT"}},
		{"속옷/양말/홈 (Inner)", []string{"양말", "삭스", "드로즈", "팬티", "잠옷", "SOCKS", "UNDERWEAR"}},
		{"디지털/라이프 (Tech)", []string{"케이스", "필름", "거치대", "충전기", "CASE", "FILM"}},
		{"블랙/무채색 (Monotone)", []string{"블랙", "검정", "BLACK", "그레이", "회색", "GREY", "GRAY", "차콜", "화이트", "흰색", "WHITE", "네이비", "NAVY"}},
		{"유채색/포인트 (Color)", []string{"핑크", "블루", "옐로우", "그린", "민트", "라벤더", "PINK", "BLUE", "GREEN"}},
	} {
		f.Tags = append(f.Tags, struct {
			Name     string   `yaml:"name"`
			Keywords []string `yaml:"keywords"`
		}{tg.name, tg.keywords})
	}

	f.CoreExclusions = []string{
		"라운드랩", "토리든", "에스네이처", "아비브", "토니모리", "이니스프리",
		"닥터지", "아누아", "마녀공장", "메디힐", "성분에디터", "올리브영", "화장솜",
	}

	f.NegativeKeywords = []string{"건조", "좁쌀", "트러블", "끈적", "비싸", "그저", "자극"}

	for _, c := range []struct{ label, brandKW, goodsKW string }{
		{"라운드랩 1025 독도 토너 (Total)", "라운드랩", "독도|토너"},
		{"토리든 다이브인 토너 (Total)", "토리든", "토너"},
		{"에스네이처 아쿠아 토너 (Total)", "에스네이처", "토너|스킨"},
		{"아비브 어성초 토너 (Total)", "아비브", "토너|패드"},
		{"토니모리 모찌 토너 (Total)", "토니모리", "모찌"},
	} {
		f.Consolidations = append(f.Consolidations, struct {
			Label   string `yaml:"label"`
			BrandKW string `yaml:"brand_kw"`
			GoodsKW string `yaml:"goods_kw"`
		}{c.label, c.brandKW, c.goodsKW})
	}

	return f
}
