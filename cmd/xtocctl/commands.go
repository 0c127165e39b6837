package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xtoc-dev/xtoc/internal/keybundle"
	"github.com/xtoc-dev/xtoc/internal/protocol"
	"github.com/xtoc-dev/xtoc/internal/protocol/chunk"
	"github.com/xtoc-dev/xtoc/internal/protocol/frame"
	"github.com/xtoc-dev/xtoc/internal/protocol/template"
	"github.com/xtoc-dev/xtoc/internal/protocol/transport"
	"github.com/xtoc-dev/xtoc/internal/roster"
	"github.com/xtoc-dev/xtoc/internal/secure"
	"github.com/xtoc-dev/xtoc/internal/store/packets"
)

func runEncode(args []string) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	configPath := fs.String("config", "", "config file path")
	templateName := fs.String("template", "sitrep", "template name (checkin, sitrep, contact, task, resource, asset, zone, mission)")
	profileName := fs.String("profile", "", "transport profile, overrides config")
	msgID := fs.String("id", "", "correlation id, fresh when empty")
	bundlePath := fs.String("bundle", "", "key bundle token file, enables secure mode")

	src := fs.Uint("src", 0, "source unit id (required)")
	dst := fs.Uint("dst", 0, "destination unit id hint")
	timeMS := fs.Int64("time-ms", 0, "report time in unix milliseconds, now when 0")
	ids := fs.String("ids", "", "comma-separated correlated unit ids")

	lat := fs.Float64("lat", 0, "latitude in degrees")
	lon := fs.Float64("lon", 0, "longitude in degrees")
	status := fs.Uint("status", 0, "status code")
	pri := fs.Uint("pri", 0, "priority code")
	condition := fs.Uint("condition", 0, "condition code")
	threat := fs.Uint("threat", 0, "threat code (contact)")
	count := fs.Uint("count", 0, "observed count (contact)")
	bearing := fs.Uint("bearing", 0, "bearing in degrees (contact)")
	rangeM := fs.Uint("range", 0, "range in meters (contact)")
	taskCode := fs.Uint("task-code", 0, "task code (task)")
	taskID := fs.Uint("task-id", 0, "task id (task)")
	resourceType := fs.Uint("resource-type", 0, "resource type (resource)")
	qty := fs.Uint("qty", 0, "quantity (resource)")
	assetType := fs.Uint("asset-type", 0, "asset type (asset)")
	missionCode := fs.Uint("mission-code", 0, "mission code (mission)")
	phase := fs.Uint("phase", 0, "mission phase (mission)")
	objective := fs.Uint("objective", 0, "objective id (mission)")
	zoneKind := fs.Uint("zone-kind", 0, "zone kind (zone)")
	label := fs.Uint("label", 0, "zone label (zone)")
	radius := fs.Uint("radius", 0, "zone radius in meters (zone)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	kind, ok := template.KindByName(*templateName)
	if !ok {
		return fmt.Errorf("unknown template %q", *templateName)
	}
	profile, err := resolveProfile(cfg, *profileName)
	if err != nil {
		return err
	}

	corr, err := parseIDList(*ids)
	if err != nil {
		return err
	}

	when := *timeMS
	if when == 0 {
		when = time.Now().UnixMilli()
	}

	p := template.Payload{
		Kind:         kind,
		Src:          uint16(*src),
		Dst:          uint16(*dst),
		TimeMS:       when,
		Status:       uint8(*status),
		Priority:     uint8(*pri),
		Condition:    uint8(*condition),
		Threat:       uint8(*threat),
		Count:        uint8(*count),
		BearingDeg:   uint16(*bearing),
		RangeM:       uint16(*rangeM),
		TaskCode:     uint8(*taskCode),
		TaskID:       uint16(*taskID),
		ResourceType: uint8(*resourceType),
		Quantity:     uint16(*qty),
		AssetType:    uint8(*assetType),
		MissionCode:  uint8(*missionCode),
		Phase:        uint8(*phase),
		Objective:    uint16(*objective),
		ZoneKind:     uint8(*zoneKind),
		Label:        uint8(*label),
		RadiusM:      uint16(*radius),
		Lat:          *lat,
		Lon:          *lon,
		SrcIDs:       corr,
	}

	mode := frame.Clear()
	var cipher protocol.Cipher
	if path := firstNonEmpty(*bundlePath, cfg.Bundle); path != "" {
		ring, kid, err := loadCipher(path)
		if err != nil {
			return err
		}
		mode = frame.Secure(kid)
		cipher = ring
	}

	lines, err := protocol.Send(p, mode, *msgID, profile, cipher)
	if err != nil {
		return err
	}
	log.Info().
		Str("template", kind.String()).
		Str("profile", profile.Name).
		Int("parts", len(lines)).
		Msg("report encoded")
	for _, line := range lines {
		fmt.Println(line)
	}
	return nil
}

func runDecode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	configPath := fs.String("config", "", "config file path")
	bundlePath := fs.String("bundle", "", "key bundle token file for secure traffic")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	text, err := io.ReadAll(os.Stdin)
	if err != nil {
		return err
	}

	var cipher protocol.Cipher
	if path := firstNonEmpty(*bundlePath, cfg.Bundle); path != "" {
		ring, _, err := loadCipher(path)
		if err != nil {
			return err
		}
		cipher = ring
	}

	payload, pkt, err := protocol.Receive(string(text), cipher)
	if err != nil {
		return err
	}
	return printDecoded(payload, pkt)
}

func runIngest(args []string) error {
	fs := flag.NewFlagSet("ingest", flag.ContinueOnError)
	configPath := fs.String("config", "", "config file path")
	dbPath := fs.String("db", "", "chunk store path, overrides config")
	bundlePath := fs.String("bundle", "", "key bundle token file for secure traffic")
	decode := fs.Bool("decode", false, "decode messages that became complete")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	store, err := packets.Open(firstNonEmpty(*dbPath, cfg.DBPath), packets.WithLogger(log.Logger))
	if err != nil {
		return err
	}
	defer store.Close()

	var cipher protocol.Cipher
	if path := firstNonEmpty(*bundlePath, cfg.Bundle); path != "" {
		ring, _, err := loadCipher(path)
		if err != nil {
			return err
		}
		cipher = ring
	}

	sc := bufio.NewScanner(os.Stdin)
	completed := map[string]struct{}{}
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		ref, _, err := store.Put(line)
		if err != nil {
			log.Warn().Str("line", line).Msg("skipping unparseable line")
			continue
		}
		done, err := store.Complete(ref.Key)
		if err != nil {
			return err
		}
		if done {
			completed[ref.Key] = struct{}{}
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}

	for key := range completed {
		log.Info().Str("key", key).Msg("message complete")
		if !*decode {
			continue
		}
		lines, err := store.Lines(key)
		if err != nil {
			return err
		}
		pkt, err := chunk.ReassembleText(strings.Join(lines, "\n"))
		if err != nil {
			return err
		}
		payload, err := protocol.DecodePacket(pkt, cipher)
		if err != nil {
			log.Warn().Str("key", key).Err(err).Msg("complete message failed to decode")
			continue
		}
		if err := printDecoded(payload, pkt); err != nil {
			return err
		}
	}
	return nil
}

func runProfiles(args []string) error {
	fs := flag.NewFlagSet("profiles", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	for _, p := range transport.All() {
		fmt.Printf("%-12s %6d\n", p.Name, p.MaxChars)
	}
	return nil
}

func runKeygen(args []string) error {
	fs := flag.NewFlagSet("keygen", flag.ContinueOnError)
	team := fs.String("team", "", "team id (required)")
	kid := fs.String("kid", "", "key id (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*team) == "" || strings.TrimSpace(*kid) == "" {
		return fmt.Errorf("keygen requires -team and -kid")
	}

	key, err := secure.NewRandomKey()
	if err != nil {
		return err
	}
	token, err := keybundle.Format(keybundle.New(*team, *kid, key))
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

func runRoster(args []string) error {
	fs := flag.NewFlagSet("roster", flag.ContinueOnError)
	file := fs.String("file", "", "roster file (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("roster requires -file")
	}

	r, err := roster.Load(*file)
	if err != nil {
		return err
	}
	fmt.Printf("team %s: %d units\n", r.TeamID, len(r.Units))
	for _, u := range r.Units {
		fmt.Printf("%5d  %-10s %s\n", u.ID, u.Callsign, u.Name)
	}
	return nil
}

func resolveProfile(cfg Config, override string) (transport.Profile, error) {
	name := firstNonEmpty(override, cfg.Profile)
	p, ok := transport.ByName(name)
	if !ok {
		return transport.Profile{}, fmt.Errorf("unknown profile %q", name)
	}
	return p, nil
}

// loadCipher reads a key bundle token file and returns a one-key keyring
// along with the bundle's key id.
func loadCipher(path string) (*secure.Keyring, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	bundle, err := keybundle.Parse(string(raw))
	if err != nil {
		return nil, "", err
	}
	key, err := bundle.Key()
	if err != nil {
		return nil, "", err
	}
	ring := secure.NewKeyring()
	if err := ring.Add(bundle.KID, key); err != nil {
		return nil, "", err
	}
	return ring, bundle.KID, nil
}

func parseIDList(raw string) ([]uint32, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	fields := strings.Split(raw, ",")
	out := make([]uint32, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(strings.TrimSpace(f), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("bad unit id %q", f)
		}
		out = append(out, uint32(v))
	}
	return out, nil
}

func printDecoded(payload template.Payload, pkt frame.Packet) error {
	out := struct {
		Template string           `json:"template"`
		Mode     string           `json:"mode"`
		KID      string           `json:"kid,omitempty"`
		ID       string           `json:"id"`
		Payload  template.Payload `json:"payload"`
	}{
		Template: payload.Kind.String(),
		Mode:     pkt.Mode.String(),
		KID:      pkt.Mode.KID(),
		ID:       pkt.ID,
	}
	out.Payload = payload
	doc, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(doc))
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
